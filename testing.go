package icelandauth

import (
	"time"

	"go.uber.org/zap"
)

// NewLoginGateForTest creates a LoginGate with injected dependencies,
// skipping the Caddy provisioning lifecycle. This constructor is
// intended for testing purposes only.
func NewLoginGateForTest(config Config, sessionSecret string, verifier *Verifier) *LoginGate {
	return &LoginGate{
		Config:          config,
		SessionSecret:   sessionSecret,
		verifier:        verifier,
		logger:          zap.NewNop(),
		sessionDuration: defaultSessionDuration,
		cookieName:      defaultCookieName,
	}
}

// SessionDurationForTest overrides the effective session lifetime.
func (g *LoginGate) SessionDurationForTest(d time.Duration) {
	g.sessionDuration = d
}
