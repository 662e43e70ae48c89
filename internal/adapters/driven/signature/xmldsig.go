package signature

import (
	"crypto/x509"
	"encoding/base64"
	"strings"
	"time"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/core/domain"
	"github.com/djgunni86/icelandauth/internal/core/ports"
)

// VerificationDetails contains metadata about a successful signature verification.
type VerificationDetails struct {
	Algorithm   string    // Signature algorithm (e.g., "RSA-SHA256")
	CertSubject string    // Certificate subject (e.g., "SERIALNUMBER=6503760649")
	CertExpiry  time.Time // Certificate expiry time
}

// algorithmURIToName maps XML DSig algorithm URIs to human-readable names.
var algorithmURIToName = map[string]string{
	"http://www.w3.org/2000/09/xmldsig#rsa-sha1":          "RSA-SHA1",
	"http://www.w3.org/2001/04/xmldsig-more#rsa-sha256":   "RSA-SHA256",
	"http://www.w3.org/2001/04/xmldsig-more#rsa-sha384":   "RSA-SHA384",
	"http://www.w3.org/2001/04/xmldsig-more#rsa-sha512":   "RSA-SHA512",
	"http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha256": "ECDSA-SHA256",
	"http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha384": "ECDSA-SHA384",
	"http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha512": "ECDSA-SHA512",
}

// algorithmName converts an XML DSig algorithm URI to a human-readable name.
// Returns the URI unchanged if not recognized.
func algorithmName(uri string) string {
	if name, ok := algorithmURIToName[uri]; ok {
		return name
	}
	return uri
}

// EmbeddedCertVerifier verifies the enveloped XML signature on a login
// token using the certificate carried inside the token's own KeyInfo
// block. Who that certificate belongs to is a separate trust decision
// made by the caller; this adapter only establishes that the document
// was signed by the embedded certificate's key and not altered since.
type EmbeddedCertVerifier struct {
	clock  *dsig.Clock
	logger *zap.Logger
}

// NewEmbeddedCertVerifier creates a verifier using the real clock.
func NewEmbeddedCertVerifier() *EmbeddedCertVerifier {
	return &EmbeddedCertVerifier{}
}

// NewEmbeddedCertVerifierWithLogger creates a verifier that logs
// verification details on success.
func NewEmbeddedCertVerifierWithLogger(logger *zap.Logger) *EmbeddedCertVerifier {
	return &EmbeddedCertVerifier{logger: logger}
}

// NewEmbeddedCertVerifierWithClock creates a verifier with a fixed dsig
// clock. Use this in tests that pin certificate validity.
func NewEmbeddedCertVerifierWithClock(clock *dsig.Clock, logger *zap.Logger) *EmbeddedCertVerifier {
	return &EmbeddedCertVerifier{clock: clock, logger: logger}
}

// Verify validates the token's signature and returns the embedded
// certificate on success.
//
// Missing Signature or X509Certificate elements report a malformed
// format; corrupt certificate bytes and digest or signature mismatches
// report a signature error. No error from this method ever terminates
// the verification call - the caller records it as a failed gate.
func (v *EmbeddedCertVerifier) Verify(doc *etree.Document) (*x509.Certificate, error) {
	root := doc.Root()
	if root == nil {
		return nil, domain.MalformedFormatError("document has no root element")
	}

	sig := decode.FindFirst(root, "Signature")
	if sig == nil {
		return nil, domain.MalformedFormatError("no Signature element")
	}

	cert, err := extractCertificate(sig)
	if err != nil {
		return nil, err
	}

	ctx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{cert},
	})
	if v.clock != nil {
		ctx.Clock = v.clock
	}

	if _, err := ctx.Validate(root); err != nil {
		return nil, domain.SignatureError("signature verification failed", err)
	}

	if v.logger != nil {
		v.logger.Info("login token signature verified",
			zap.String("algorithm", algorithmName(extractSignatureAlgorithm(sig))),
			zap.String("cert_subject", cert.Subject.String()),
			zap.Time("cert_expiry", cert.NotAfter),
		)
	}

	return cert, nil
}

// extractCertificate pulls the base64 certificate out of the signature's
// KeyInfo block and parses it.
func extractCertificate(sig *etree.Element) (*x509.Certificate, error) {
	certEl := decode.FindFirst(sig, "X509Certificate")
	if certEl == nil {
		return nil, domain.MalformedFormatError("no X509Certificate in KeyInfo")
	}

	der, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(certEl.Text()), ""))
	if err != nil {
		return nil, domain.SignatureError("embedded certificate is not valid base64", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, domain.SignatureError("cannot parse embedded certificate", err)
	}
	return cert, nil
}

// extractSignatureAlgorithm returns the SignatureMethod Algorithm URI,
// or empty string if not found.
func extractSignatureAlgorithm(sig *etree.Element) string {
	method := decode.FindFirst(sig, "SignatureMethod")
	if method == nil {
		return ""
	}
	return method.SelectAttrValue("Algorithm", "")
}

var _ ports.SignatureVerifier = (*EmbeddedCertVerifier)(nil)
