package usecase

import (
	"time"

	"github.com/billscan/backend/internal/domain"
)

// noopMetrics is used when no recorder is wired
type noopMetrics struct{}

func (noopMetrics) RecordScan(string, time.Duration) {}

func (noopMetrics) RecordAmountSource(domain.AmountSource) {}

func (noopMetrics) RecordClassification(string) {}

func (noopMetrics) RecordOCRDuration(time.Duration) {}
