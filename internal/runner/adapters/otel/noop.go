package otel

import (
	"context"
	"time"
)

// NoOpMetrics is a metrics exporter that does nothing.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new no-op exporter for graceful degradation.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (m *NoOpMetrics) RecordFetch(ctx context.Context, outcome string, elapsed time.Duration) {}

func (m *NoOpMetrics) RecordSubmission(ctx context.Context, outcome string) {}

func (m *NoOpMetrics) RecordTranscription(ctx context.Context, outcome string, elapsed time.Duration) {
}

func (m *NoOpMetrics) Close(ctx context.Context) error { return nil }
