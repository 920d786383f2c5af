package domain

import (
	"context"
	"image"
	"time"
)

// ImageDecoder turns uploaded bytes into a decoded image
type ImageDecoder interface {
	Decode(data []byte, contentType string) (image.Image, error)
}

// OCREngine recognizes text in a decoded image. Line breaks are preserved as "\n".
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Classifier maps a description to a category label
type Classifier interface {
	Classify(ctx context.Context, description string) (string, error)
}

// MetricsRecorder receives pipeline observations
type MetricsRecorder interface {
	RecordScan(status string, duration time.Duration)
	RecordAmountSource(source AmountSource)
	RecordClassification(outcome string)
	RecordOCRDuration(duration time.Duration)
}
