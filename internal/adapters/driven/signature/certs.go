package signature

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// LoadBrokerCertificate loads the broker's published signing certificate
// from a PEM file. When the file carries several certificates (rotation),
// the first one wins.
func LoadBrokerCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read certificate file: %w", err)
	}

	for {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse certificate: %w", err)
			}
			return cert, nil
		}
		data = rest
	}

	return nil, fmt.Errorf("no certificate found in %s", path)
}

// AnchorFromCertificate derives the trust-anchor identity fields from a
// broker certificate. Operators can point the configuration at the
// broker's published PEM instead of copying serial numbers by hand.
func AnchorFromCertificate(cert *x509.Certificate) (issuerName, issuerSerial, signerSerial string) {
	issuer := domain.ParseDistinguishedName(cert.Issuer.String())
	subject := domain.ParseDistinguishedName(cert.Subject.String())

	issuerName, _ = issuer.Get("CN")
	issuerSerial, _ = issuer.Get("SERIALNUMBER")
	signerSerial, _ = subject.Get("SERIALNUMBER")
	return issuerName, issuerSerial, signerSerial
}
