package domain

import "strings"

// Default trust anchor identity for the national broker's signing
// certificate. These are policy defaults, not hardcoded behavior: tests
// and alternate brokers may override every field.
const (
	DefaultTrustedIssuerName   = "Traustur bunadur"
	DefaultTrustedIssuerSerial = "5210002790"
	DefaultTrustedSignerSerial = "6503760649"
)

// Settings is the verification policy. It is constructed once, validated,
// and only read afterwards, so any number of Verify calls may share it
// concurrently.
type Settings struct {
	// Audience is the expected audience restriction value. Required.
	Audience string `json:"audience"`

	// Destination, when set, must match the response's declared
	// destination (case-insensitive). Empty disables the check.
	Destination string `json:"destination,omitempty"`

	// DestinationSSN, when set, must equal the DestinationSSN attribute.
	// Empty disables the check.
	DestinationSSN string `json:"destination_ssn,omitempty"`

	// AuthID, when set, must equal the AuthID attribute when the token
	// carries one. Empty disables the check.
	AuthID string `json:"auth_id,omitempty"`

	// Authentication lists the acceptable authentication methods. Empty
	// accepts any method.
	Authentication []string `json:"authentication,omitempty"`

	// VerifyIPAddress enables comparing the IPAddress attribute against
	// the observed client IP.
	VerifyIPAddress bool `json:"verify_ip_address,omitempty"`

	// LogRawResponse emits the full decoded response as a debug event.
	// The response contains personal data; leave this off outside of
	// troubleshooting.
	LogRawResponse bool `json:"log_raw_response,omitempty"`

	// TrustedIssuerName is the expected CN of the certificate issuer.
	TrustedIssuerName string `json:"trusted_issuer_name,omitempty"`

	// TrustedIssuerSerial is the expected SERIALNUMBER of the issuer.
	TrustedIssuerSerial string `json:"trusted_issuer_serial,omitempty"`

	// TrustedSignerSerial is the expected SERIALNUMBER of the subject.
	TrustedSignerSerial string `json:"trusted_signer_serial,omitempty"`
}

// Validate checks required fields and fills in the default trust anchor
// for any trust field left empty.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Audience) == "" {
		return ConfigError("audience is required")
	}
	if s.TrustedIssuerName == "" {
		s.TrustedIssuerName = DefaultTrustedIssuerName
	}
	if s.TrustedIssuerSerial == "" {
		s.TrustedIssuerSerial = DefaultTrustedIssuerSerial
	}
	if s.TrustedSignerSerial == "" {
		s.TrustedSignerSerial = DefaultTrustedSignerSerial
	}
	return nil
}

// AllowsAuthentication reports whether the asserted method is acceptable.
// An empty allow-list accepts any method.
func (s *Settings) AllowsAuthentication(method string) bool {
	if len(s.Authentication) == 0 {
		return true
	}
	for _, m := range s.Authentication {
		if m == method {
			return true
		}
	}
	return false
}
