package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/billscan/backend/internal/domain"
)

// Scan outcomes reported to metrics
const (
	scanStatusSuccess     = "success"
	scanStatusNoImage     = "no_image"
	scanStatusDecodeError = "decode_error"
	scanStatusOCRError    = "ocr_error"
)

// ReceiptServiceConfig holds configuration for the receipt service
type ReceiptServiceConfig struct {
	ClassifierTimeout  time.Duration
	EnableDebugLogging bool
}

// ReceiptService runs the scan pipeline: decode -> OCR -> extract -> categorize
type ReceiptService struct {
	decoder   domain.ImageDecoder
	ocr       domain.OCREngine
	extractor *FieldExtractor
	resolver  *CategoryResolver
	metrics   domain.MetricsRecorder
}

// NewReceiptService creates a new receipt service with dependencies
func NewReceiptService(
	decoder domain.ImageDecoder,
	ocr domain.OCREngine,
	classifier domain.Classifier,
	metrics domain.MetricsRecorder,
	config ReceiptServiceConfig,
) *ReceiptService {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &ReceiptService{
		decoder:   decoder,
		ocr:       ocr,
		extractor: NewFieldExtractor(config.EnableDebugLogging),
		resolver: NewCategoryResolver(classifier, metrics, CategoryResolverConfig{
			Timeout: config.ClassifierTimeout,
		}),
		metrics: metrics,
	}
}

// ScanReceipt extracts amount, description and category from a receipt image.
// Only missing or unreadable images fail; classifier trouble degrades to the fallback label.
func (s *ReceiptService) ScanReceipt(
	ctx context.Context,
	imageData []byte,
	contentType string,
) (*domain.ScanResult, error) {
	start := time.Now()

	if len(imageData) == 0 {
		s.metrics.RecordScan(scanStatusNoImage, time.Since(start))
		return nil, domain.ErrNoImage
	}

	img, err := s.decoder.Decode(imageData, contentType)
	if err != nil {
		s.metrics.RecordScan(scanStatusDecodeError, time.Since(start))
		if errors.Is(err, domain.ErrImageDecode) || errors.Is(err, domain.ErrNoImage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	ocrStart := time.Now()
	text, err := s.ocr.Recognize(ctx, img)
	s.metrics.RecordOCRDuration(time.Since(ocrStart))
	if err != nil {
		s.metrics.RecordScan(scanStatusOCRError, time.Since(start))
		if errors.Is(err, domain.ErrOCRFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}

	fields := s.extractor.Extract(text)
	s.metrics.RecordAmountSource(fields.AmountSource)

	category := s.resolver.Resolve(ctx, fields.Description)

	log.Printf("[SCAN] amount=%q description=%q category=%q source=%s",
		fields.Amount, fields.Description, category, fields.AmountSource)
	s.metrics.RecordScan(scanStatusSuccess, time.Since(start))

	return &domain.ScanResult{
		Amount:      fields.Amount,
		Description: fields.Description,
		Category:    category,
	}, nil
}

// ExtractFields runs only the text heuristics over already recognized text
func (s *ReceiptService) ExtractFields(text string) domain.ExtractedFields {
	return s.extractor.Extract(text)
}

// Categorize resolves a category for a free-text description
func (s *ReceiptService) Categorize(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", domain.ErrInvalidRequest
	}
	return s.resolver.Resolve(ctx, description), nil
}
