package icelandauth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/signature"
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// Config is the JSON configuration surface for embedding applications.
// It extends the verification settings with file-based conveniences.
type Config struct {
	domain.Settings

	// TrustedCertFile points at the broker's published signing
	// certificate (PEM). When set, the trust-anchor fields are derived
	// from the certificate instead of being spelled out.
	TrustedCertFile string `json:"trusted_cert_file,omitempty"`
}

// LoadConfig reads and validates a JSON configuration file, returning
// settings ready for New.
func LoadConfig(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg.ToSettings()
}

// ToSettings resolves the certificate file, if any, and validates the
// resulting settings.
func (c *Config) ToSettings() (*domain.Settings, error) {
	settings := c.Settings

	if c.TrustedCertFile != "" {
		cert, err := signature.LoadBrokerCertificate(c.TrustedCertFile)
		if err != nil {
			return nil, fmt.Errorf("load trusted certificate: %w", err)
		}
		settings.TrustedIssuerName, settings.TrustedIssuerSerial, settings.TrustedSignerSerial = signature.AnchorFromCertificate(cert)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}
