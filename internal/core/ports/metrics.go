package ports

// MetricsRecorder is the port interface for recording metrics.
// Implementations are adapters (PrometheusMetricsRecorder for production,
// NoopMetricsRecorder for disabled/testing).
type MetricsRecorder interface {
	// RecordLogin records one verification attempt and its outcome.
	RecordLogin(valid bool)

	// RecordCheckFailure records a single failed gate by name
	// (signature, cert, audience, destination, time, ip, auth_method,
	// auth_id, destination_ssn), or "decode" when the token was too
	// malformed for any gate to run.
	RecordCheckFailure(check string)
}
