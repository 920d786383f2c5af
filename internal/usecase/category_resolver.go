package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/billscan/backend/internal/domain"
)

// Classification outcomes reported to metrics
const (
	classificationSuccess  = "success"
	classificationFallback = "fallback"
)

const defaultClassifierTimeout = 5 * time.Second

// CategoryResolverConfig holds configuration for the category resolver
type CategoryResolverConfig struct {
	Timeout time.Duration
}

// CategoryResolver maps a description to a category label through the classifier.
// Failures never escape: any classifier error degrades to domain.FallbackCategory.
type CategoryResolver struct {
	classifier domain.Classifier
	metrics    domain.MetricsRecorder
	timeout    time.Duration
}

// NewCategoryResolver creates a new category resolver with dependencies
func NewCategoryResolver(
	classifier domain.Classifier,
	metrics domain.MetricsRecorder,
	config CategoryResolverConfig,
) *CategoryResolver {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultClassifierTimeout
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &CategoryResolver{
		classifier: classifier,
		metrics:    metrics,
		timeout:    timeout,
	}
}

// Resolve returns the classifier's label for description, or the fallback label.
// One attempt per call, bounded by the configured timeout.
func (r *CategoryResolver) Resolve(ctx context.Context, description string) string {
	if r.classifier == nil {
		r.metrics.RecordClassification(classificationFallback)
		return domain.FallbackCategory
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	label, err := r.classify(ctx, description)
	if err != nil {
		log.Printf("[CLASSIFIER] Falling back to %q for %q: %v", domain.FallbackCategory, description, err)
		r.metrics.RecordClassification(classificationFallback)
		return domain.FallbackCategory
	}

	r.metrics.RecordClassification(classificationSuccess)
	return label
}

// classify runs the classifier call so that a collaborator ignoring ctx still
// cannot hold the caller past the deadline.
func (r *CategoryResolver) classify(ctx context.Context, description string) (string, error) {
	type result struct {
		label string
		err   error
	}

	done := make(chan result, 1)
	go func() {
		label, err := r.classifier.Classify(ctx, description)
		done <- result{label: label, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		if strings.TrimSpace(res.label) == "" {
			return "", domain.ErrClassifierFailure
		}
		return res.label, nil
	}
}
