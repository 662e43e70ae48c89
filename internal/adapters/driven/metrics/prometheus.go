package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/djgunni86/icelandauth/internal/core/ports"
)

// PrometheusMetricsRecorder records metrics using Prometheus.
type PrometheusMetricsRecorder struct {
	loginsTotal        *prometheus.CounterVec
	checkFailuresTotal *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder creates a new Prometheus metrics recorder
// using the default Prometheus registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	return NewPrometheusMetricsRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsRecorderWithRegistry creates a new Prometheus metrics recorder
// with a custom registry. Use this for testing.
func NewPrometheusMetricsRecorderWithRegistry(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	loginsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "icelandauth_logins_total",
		Help: "Total login token verifications",
	}, []string{"result"})

	checkFailuresTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "icelandauth_check_failures_total",
		Help: "Failed verification gates by check name",
	}, []string{"check"})

	reg.MustRegister(
		loginsTotal,
		checkFailuresTotal,
	)

	return &PrometheusMetricsRecorder{
		loginsTotal:        loginsTotal,
		checkFailuresTotal: checkFailuresTotal,
	}
}

// RecordLogin records one verification attempt and its outcome.
func (p *PrometheusMetricsRecorder) RecordLogin(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	p.loginsTotal.WithLabelValues(result).Inc()
}

// RecordCheckFailure records a single failed gate by name.
func (p *PrometheusMetricsRecorder) RecordCheckFailure(check string) {
	p.checkFailuresTotal.WithLabelValues(check).Inc()
}

// Ensure PrometheusMetricsRecorder implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*PrometheusMetricsRecorder)(nil)
