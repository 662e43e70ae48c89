package metrics

import (
	"github.com/djgunni86/icelandauth/internal/core/ports"
)

// NoopMetricsRecorder is a no-op implementation for when metrics are disabled.
// All methods are safe to call and do nothing.
type NoopMetricsRecorder struct{}

// NewNoopMetricsRecorder creates a new no-op metrics recorder.
func NewNoopMetricsRecorder() *NoopMetricsRecorder {
	return &NoopMetricsRecorder{}
}

// RecordLogin is a no-op.
func (n *NoopMetricsRecorder) RecordLogin(valid bool) {}

// RecordCheckFailure is a no-op.
func (n *NoopMetricsRecorder) RecordCheckFailure(check string) {}

// Ensure NoopMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*NoopMetricsRecorder)(nil)
