package metrics

import (
	"time"

	"github.com/billscan/backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records scan pipeline observations
type PrometheusMetrics struct {
	scansTotal           *prometheus.CounterVec
	scanDuration         prometheus.Histogram
	amountSourceTotal    *prometheus.CounterVec
	classificationsTotal *prometheus.CounterVec
	ocrDuration          prometheus.Histogram
}

var _ domain.MetricsRecorder = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the scan metrics with reg
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_scans_total",
				Help: "Total number of receipt scans by outcome",
			},
			[]string{"status"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipt_scan_duration_seconds",
				Help:    "End-to-end receipt scan duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		amountSourceTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_amount_source_total",
				Help: "Which extraction pass produced the amount",
			},
			[]string{"source"},
		),
		classificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classifier_requests_total",
				Help: "Total number of categorization attempts by outcome",
			},
			[]string{"outcome"},
		),
		ocrDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ocr_duration_seconds",
				Help:    "OCR engine duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
	}
}

func (m *PrometheusMetrics) RecordScan(status string, duration time.Duration) {
	m.scansTotal.WithLabelValues(status).Inc()
	m.scanDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordAmountSource(source domain.AmountSource) {
	m.amountSourceTotal.WithLabelValues(string(source)).Inc()
}

func (m *PrometheusMetrics) RecordClassification(outcome string) {
	m.classificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordOCRDuration(duration time.Duration) {
	m.ocrDuration.Observe(duration.Seconds())
}
