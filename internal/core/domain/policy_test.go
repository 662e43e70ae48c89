//go:build unit

package domain

import (
	"errors"
	"testing"
)

func TestSettings_Validate_RequiresAudience(t *testing.T) {
	var s Settings
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() must reject empty audience")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != ErrCodeConfigMissing {
		t.Errorf("Validate() error = %v, want %s", err, ErrCodeConfigMissing)
	}
}

func TestSettings_Validate_DefaultsTrustAnchor(t *testing.T) {
	s := Settings{Audience: "app.example"}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if s.TrustedIssuerName != DefaultTrustedIssuerName {
		t.Errorf("TrustedIssuerName = %q, want %q", s.TrustedIssuerName, DefaultTrustedIssuerName)
	}
	if s.TrustedIssuerSerial != DefaultTrustedIssuerSerial {
		t.Errorf("TrustedIssuerSerial = %q, want %q", s.TrustedIssuerSerial, DefaultTrustedIssuerSerial)
	}
	if s.TrustedSignerSerial != DefaultTrustedSignerSerial {
		t.Errorf("TrustedSignerSerial = %q, want %q", s.TrustedSignerSerial, DefaultTrustedSignerSerial)
	}
}

func TestSettings_Validate_KeepsCustomAnchor(t *testing.T) {
	s := Settings{
		Audience:            "app.example",
		TrustedIssuerName:   "Test Issuer",
		TrustedIssuerSerial: "1111111111",
		TrustedSignerSerial: "2222222222",
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if s.TrustedIssuerName != "Test Issuer" || s.TrustedIssuerSerial != "1111111111" || s.TrustedSignerSerial != "2222222222" {
		t.Errorf("Validate() overwrote custom anchor: %+v", s)
	}
}

func TestSettings_AllowsAuthentication(t *testing.T) {
	testCases := []struct {
		name    string
		allowed []string
		method  string
		want    bool
	}{
		{"empty list accepts anything", nil, "Rafraen skilriki", true},
		{"empty list accepts empty", nil, "", true},
		{"member", []string{"Rafraen skilriki", "Islykill"}, "Islykill", true},
		{"non-member", []string{"Rafraen skilriki"}, "Islykill", false},
		{"empty method against list", []string{"Rafraen skilriki"}, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Settings{Authentication: tc.allowed}
			if got := s.AllowsAuthentication(tc.method); got != tc.want {
				t.Errorf("AllowsAuthentication(%q) = %v, want %v", tc.method, got, tc.want)
			}
		})
	}
}
