package ports

import (
	"crypto/x509"

	"github.com/beevik/etree"
)

// SignatureVerifier verifies the XML signature embedded in a decoded
// login token. This is a port interface - implementations are adapters.
//
// Verify locates the response's Signature element and the certificate
// carried in its KeyInfo block, canonicalizes the signed info per the
// document's declared algorithm, and checks digest and signature value
// against the certificate's public key. On success it returns the parsed
// embedded certificate for the trust-anchor check; the certificate must
// not be cached across calls.
type SignatureVerifier interface {
	Verify(doc *etree.Document) (*x509.Certificate, error)
}
