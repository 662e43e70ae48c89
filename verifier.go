package icelandauth

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/adapters/driven/metrics"
	"github.com/djgunni86/icelandauth/internal/adapters/driven/signature"
	"github.com/djgunni86/icelandauth/internal/core/domain"
	"github.com/djgunni86/icelandauth/internal/core/ports"
)

// Verifier verifies login tokens issued by the national eID broker.
//
// A Verifier is immutable after New and safe for concurrent use: every
// Verify call owns its document and certificate exclusively, and the
// settings are only read. Nothing is cached between calls - each token
// is verified from scratch.
type Verifier struct {
	settings *domain.Settings
	decoder  ports.TokenDecoder
	sig      ports.SignatureVerifier
	clock    ports.Clock
	metrics  ports.MetricsRecorder
	logger   *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger for verification diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Verifier) { v.logger = logger }
}

// WithClock overrides the clock used for validity-window checks.
func WithClock(clock ports.Clock) Option {
	return func(v *Verifier) { v.clock = clock }
}

// WithDecoder swaps the token decoder.
func WithDecoder(d ports.TokenDecoder) Option {
	return func(v *Verifier) { v.decoder = d }
}

// WithSignatureVerifier swaps the signature verification component.
func WithSignatureVerifier(s ports.SignatureVerifier) Option {
	return func(v *Verifier) { v.sig = s }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(v *Verifier) { v.metrics = m }
}

// New creates a Verifier for the given settings. Settings are validated
// and defaulted once here; the returned Verifier never mutates them.
func New(settings domain.Settings, opts ...Option) (*Verifier, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	v := &Verifier{
		settings: &settings,
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	if v.decoder == nil {
		v.decoder = decode.NewEtreeDecoder()
	}
	if v.sig == nil {
		v.sig = signature.NewEmbeddedCertVerifierWithLogger(v.logger)
	}
	if v.clock == nil {
		v.clock = ports.ClockFunc(time.Now)
	}
	if v.metrics == nil {
		v.metrics = metrics.NewNoopMetricsRecorder()
	}

	return v, nil
}

// Verify runs the full verification pipeline on one token.
//
// It never returns an error: malformed input yields a result with every
// flag false, and business-validation failures set their own flag false
// while every later gate still runs. observedIP may be empty when the
// caller cannot supply a client address.
func (v *Verifier) Verify(token, observedIP string) *domain.LoginResult {
	result, malformed := v.verify(token, observedIP)

	v.metrics.RecordLogin(result.Valid())
	if malformed != nil {
		// None of the gates were evaluated; counting them all as failed
		// would misstate what happened.
		v.metrics.RecordCheckFailure("decode")
		return result
	}
	for _, check := range failedChecks(result) {
		v.metrics.RecordCheckFailure(check)
	}

	return result
}

// verify returns the aggregated result. A non-nil error reports a
// malformed token - the result is then the zero value with every flag
// false, regardless of how far the pipeline got.
func (v *Verifier) verify(token, observedIP string) (*domain.LoginResult, error) {
	result := &domain.LoginResult{}

	doc, err := v.decoder.Decode(token)
	if err != nil {
		v.logger.Warn("login token could not be decoded", zap.Error(err))
		return result, err
	}

	if v.settings.LogRawResponse {
		if raw, err := doc.WriteToString(); err == nil {
			// The response carries personal data; this event only fires
			// when the operator opted in.
			v.logger.Debug("raw login response", zap.String("response", raw))
		}
	}

	// The validity window is structural: a token without both bounds is
	// malformed, not merely invalid, and earlier gate outcomes must not
	// survive into the all-false result.
	cond, err := validateConditions(doc, v.settings, v.clock.Now().UTC(), v.logger)
	if err != nil {
		v.logger.Warn("login token conditions are malformed", zap.Error(err))
		return &domain.LoginResult{}, err
	}

	cert, err := v.sig.Verify(doc)
	if err != nil {
		// A token without a Signature or X509Certificate element is
		// malformed like a broken validity window: discard every other
		// outcome. A failed cryptographic check only leaves SignatureOk
		// false and the rest of the pipeline runs.
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == domain.ErrCodeTokenInvalid {
			v.logger.Warn("login token structure is malformed", zap.Error(err))
			return &domain.LoginResult{}, err
		}
		v.logger.Warn("login token signature rejected", zap.Error(err))
	} else {
		result.SignatureOk = true
	}

	// Without a verified certificate the trust gate is skipped and
	// CertOk stays false.
	if cert != nil {
		result.CertOk = validateTrustAnchor(cert, v.settings, v.logger)
	}

	result.TimeOk = cond.timeOk
	result.AudienceOk = cond.audienceOk
	result.DestinationOk = cond.destinationOk

	attrs := extractAttributes(doc)
	delta := validateAttributes(attrs, observedIP, v.settings, v.logger)

	result.IPOk = delta.ipOk
	result.AuthMethodOk = delta.authMethodOk
	result.AuthIDOk = delta.authIDOk
	result.DestinationSSNOk = delta.destinationSSNOk
	result.UserSSN = delta.userSSN
	result.Name = delta.name
	result.AuthenticationMethod = delta.authMethod
	result.Delegation = delta.delegation
	result.Attributes = attrs

	return result, nil
}

// failedChecks lists the names of the gates that rejected this login,
// for per-check failure metrics.
func failedChecks(r *domain.LoginResult) []string {
	var failed []string
	for _, gate := range []struct {
		name string
		ok   bool
	}{
		{"signature", r.SignatureOk},
		{"cert", r.CertOk},
		{"audience", r.AudienceOk},
		{"destination", r.DestinationOk},
		{"time", r.TimeOk},
		{"ip", r.IPOk},
		{"auth_method", r.AuthMethodOk},
		{"auth_id", r.AuthIDOk},
		{"destination_ssn", r.DestinationSSNOk},
	} {
		if !gate.ok {
			failed = append(failed, gate.name)
		}
	}
	return failed
}
