package icelandauth

import (
	"crypto/x509"

	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// validateTrustAnchor checks the verified certificate's identity against
// the configured trust anchor: issuer CN, issuer SERIALNUMBER, and
// subject SERIALNUMBER must all match.
//
// This is an identity allow-list, not a chain decision - no path is
// built to a root CA and no revocation status is consulted. A component
// missing from the certificate never matches, so an empty DN field can
// never satisfy a non-empty expectation.
func validateTrustAnchor(cert *x509.Certificate, s *domain.Settings, log *zap.Logger) bool {
	issuer := domain.ParseDistinguishedName(cert.Issuer.String())
	subject := domain.ParseDistinguishedName(cert.Subject.String())

	issuerName, okName := issuer.Get("CN")
	if !okName || issuerName != s.TrustedIssuerName {
		log.Warn("certificate issuer name mismatch",
			zap.String("expected", s.TrustedIssuerName),
			zap.String("received", issuerName),
		)
		return false
	}

	issuerSerial, okIssuer := issuer.Get("SERIALNUMBER")
	if !okIssuer || issuerSerial != s.TrustedIssuerSerial {
		log.Warn("certificate issuer serial mismatch",
			zap.String("expected", s.TrustedIssuerSerial),
			zap.String("received", issuerSerial),
		)
		return false
	}

	signerSerial, okSigner := subject.Get("SERIALNUMBER")
	if !okSigner || signerSerial != s.TrustedSignerSerial {
		log.Warn("certificate signer serial mismatch",
			zap.String("expected", s.TrustedSignerSerial),
			zap.String("received", signerSerial),
		)
		return false
	}

	return true
}
