//go:build unit

package icelandauth

import (
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/djgunni86/icelandauth/internal/core/domain"
	"github.com/djgunni86/icelandauth/testfixtures/broker"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"audience": "app.example",
		"destination": "https://app.example/login",
		"authentication": ["Rafraen skilriki"],
		"verify_ip_address": true
	}`)

	settings, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if settings.Audience != "app.example" {
		t.Errorf("Audience = %q", settings.Audience)
	}
	if settings.Destination != "https://app.example/login" {
		t.Errorf("Destination = %q", settings.Destination)
	}
	if !settings.VerifyIPAddress {
		t.Error("VerifyIPAddress = false")
	}
	// Trust anchor defaults fill in when not spelled out.
	if settings.TrustedIssuerName != domain.DefaultTrustedIssuerName {
		t.Errorf("TrustedIssuerName = %q, want default", settings.TrustedIssuerName)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "absent.json")},
		{"invalid json", writeFile(t, "bad.json", `{"audience":`)},
		{"missing audience", writeFile(t, "empty.json", `{}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(tt.path); err == nil {
				t.Error("LoadConfig() accepted a broken configuration")
			}
		})
	}
}

func TestConfig_TrustedCertFile(t *testing.T) {
	b := broker.NewWithAnchor(t, "Test Issuer", "1111111111", "2222222222")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: b.Certificate().Raw})
	certPath := writeFile(t, "broker.pem", string(certPEM))

	cfg := Config{
		Settings:        domain.Settings{Audience: "app.example"},
		TrustedCertFile: certPath,
	}
	settings, err := cfg.ToSettings()
	if err != nil {
		t.Fatalf("ToSettings() error: %v", err)
	}

	if settings.TrustedIssuerName != "Test Issuer" {
		t.Errorf("TrustedIssuerName = %q", settings.TrustedIssuerName)
	}
	if settings.TrustedIssuerSerial != "1111111111" {
		t.Errorf("TrustedIssuerSerial = %q", settings.TrustedIssuerSerial)
	}
	if settings.TrustedSignerSerial != "2222222222" {
		t.Errorf("TrustedSignerSerial = %q", settings.TrustedSignerSerial)
	}
}

func TestConfig_TrustedCertFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "absent.pem")},
		{"not pem", writeFile(t, "junk.pem", "not a certificate")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Settings:        domain.Settings{Audience: "app.example"},
				TrustedCertFile: tt.path,
			}
			if _, err := cfg.ToSettings(); err == nil {
				t.Error("ToSettings() accepted a broken certificate file")
			}
		})
	}
}
