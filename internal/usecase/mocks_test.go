package usecase

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/billscan/backend/internal/domain"
)

// MockImageDecoder is a mock implementation of domain.ImageDecoder
type MockImageDecoder struct {
	img     image.Image
	err     error
	called  bool
	gotType string
}

func (m *MockImageDecoder) Decode(data []byte, contentType string) (image.Image, error) {
	m.called = true
	m.gotType = contentType
	if m.err != nil {
		return nil, m.err
	}
	if m.img == nil {
		return image.NewGray(image.Rect(0, 0, 1, 1)), nil
	}
	return m.img, nil
}

// MockOCREngine is a mock implementation of domain.OCREngine
type MockOCREngine struct {
	text   string
	err    error
	called bool
}

func (m *MockOCREngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	m.called = true
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// MockClassifier is a mock implementation of domain.Classifier
type MockClassifier struct {
	label   string
	err     error
	delay   time.Duration
	block   bool
	calls   int
	lastArg string
	mu      sync.Mutex
}

func (m *MockClassifier) Classify(ctx context.Context, description string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastArg = description
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.label, nil
}

func (m *MockClassifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockClassifier) lastDescription() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastArg
}

// MockMetrics records observations for assertions
type MockMetrics struct {
	mu              sync.Mutex
	scans           []string
	amountSources   []domain.AmountSource
	classifications []string
	ocrObservations int
}

func (m *MockMetrics) RecordScan(status string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans = append(m.scans, status)
}

func (m *MockMetrics) RecordAmountSource(source domain.AmountSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amountSources = append(m.amountSources, source)
}

func (m *MockMetrics) RecordClassification(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifications = append(m.classifications, outcome)
}

func (m *MockMetrics) RecordOCRDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ocrObservations++
}
