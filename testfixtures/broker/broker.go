// Package broker provides a synthetic national eID broker for testing
// and local development. It owns a signing certificate whose
// distinguished names match a configurable trust anchor and issues
// signed, base64-encoded login tokens shaped like the production
// broker's.
package broker

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/crewjam/saml"
	dsig "github.com/russellhaering/goxmldsig"

	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// Broker issues test login tokens. The same broker can issue any number
// of tokens.
type Broker struct {
	key  *rsa.PrivateKey
	cert *x509.Certificate

	// Anchor identity baked into the certificate.
	IssuerName   string
	IssuerSerial string
	SignerSerial string
}

// TestBroker wraps Broker for tests, turning issuance errors into
// test failures.
type TestBroker struct {
	*Broker
	t testing.TB
}

// New creates a test broker whose certificate matches the default trust
// anchor, so default settings accept its tokens.
func New(t testing.TB) *TestBroker {
	return NewWithAnchor(t,
		domain.DefaultTrustedIssuerName,
		domain.DefaultTrustedIssuerSerial,
		domain.DefaultTrustedSignerSerial,
	)
}

// NewWithAnchor creates a test broker with a custom certificate
// identity. Use mismatching serials to exercise the trust gate.
func NewWithAnchor(t testing.TB, issuerName, issuerSerial, signerSerial string) *TestBroker {
	t.Helper()

	b, err := NewStandalone(issuerName, issuerSerial, signerSerial)
	if err != nil {
		t.Fatalf("failed to create broker: %v", err)
	}
	return &TestBroker{Broker: b, t: t}
}

// Token issues one token, failing the test on error.
func (b *TestBroker) Token(spec TokenSpec) string {
	b.t.Helper()

	token, err := b.IssueToken(spec)
	if err != nil {
		b.t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// NewStandalone creates a broker outside of a test, for development
// tooling.
func NewStandalone(issuerName, issuerSerial, signerSerial string) (*Broker, error) {
	key, cert, err := generateSignerCert(issuerName, issuerSerial, signerSerial)
	if err != nil {
		return nil, err
	}

	return &Broker{
		key:          key,
		cert:         cert,
		IssuerName:   issuerName,
		IssuerSerial: issuerSerial,
		SignerSerial: signerSerial,
	}, nil
}

// Certificate returns the broker's signing certificate.
func (b *Broker) Certificate() *x509.Certificate {
	return b.cert
}

// TokenSpec describes the login token to issue. Zero values get test
// defaults: a window from five minutes ago to five minutes ahead and a
// standard attribute set for user 1203894569.
type TokenSpec struct {
	Audience     string
	Destination  string
	NotBefore    time.Time
	NotOnOrAfter time.Time

	// Attributes in document order. Nil means DefaultAttributes; use
	// OmitAttributeStatement for a token without any statement.
	Attributes             []saml.Attribute
	OmitAttributeStatement bool

	// OmitConditions drops the Conditions element entirely.
	OmitConditions bool

	// Unsigned skips the signature block.
	Unsigned bool
}

// DefaultAttributes is the attribute set of a typical login.
func DefaultAttributes() []saml.Attribute {
	return []saml.Attribute{
		Attr(domain.AttrUserSSN, "1203894569"),
		Attr(domain.AttrName, "Jon Jonsson"),
		Attr(domain.AttrAuthentication, "Rafraen skilriki"),
		Attr(domain.AttrIPAddress, "192.0.2.10"),
	}
}

// Attr builds a single-valued broker attribute.
func Attr(name, value string) saml.Attribute {
	return saml.Attribute{
		Name:         name,
		FriendlyName: name,
		NameFormat:   "urn:oasis:names:tc:SAML:2.0:attrname-format:basic",
		Values: []saml.AttributeValue{{
			Type:  "xs:string",
			Value: value,
		}},
	}
}

// IssueToken issues one base64-encoded login token per spec.
func (b *Broker) IssueToken(spec TokenSpec) (string, error) {
	now := time.Now().UTC()
	if spec.NotBefore.IsZero() {
		spec.NotBefore = now.Add(-5 * time.Minute)
	}
	if spec.NotOnOrAfter.IsZero() {
		spec.NotOnOrAfter = now.Add(5 * time.Minute)
	}
	if spec.Audience == "" {
		spec.Audience = "app.example"
	}

	attrs := spec.Attributes
	if attrs == nil && !spec.OmitAttributeStatement {
		attrs = DefaultAttributes()
	}

	assertion := &saml.Assertion{
		ID:           "_assertion-1",
		IssueInstant: now,
		Version:      "2.0",
		Issuer: saml.Issuer{
			Format: "urn:oasis:names:tc:SAML:2.0:nameid-format:entity",
			Value:  b.IssuerName,
		},
	}
	if !spec.OmitConditions {
		assertion.Conditions = &saml.Conditions{
			NotBefore:    spec.NotBefore,
			NotOnOrAfter: spec.NotOnOrAfter,
			AudienceRestrictions: []saml.AudienceRestriction{{
				Audience: saml.Audience{Value: spec.Audience},
			}},
		}
	}
	if !spec.OmitAttributeStatement {
		assertion.AttributeStatements = []saml.AttributeStatement{{
			Attributes: attrs,
		}}
	}

	response := &saml.Response{
		ID:           "_response-1",
		IssueInstant: now,
		Version:      "2.0",
		Destination:  spec.Destination,
		Status: saml.Status{
			StatusCode: saml.StatusCode{Value: saml.StatusSuccess},
		},
		Assertion: assertion,
	}

	root := response.Element()
	if !spec.Unsigned {
		signed, err := b.sign(root)
		if err != nil {
			return "", fmt.Errorf("sign token: %w", err)
		}
		root = signed
	}

	doc := etree.NewDocument()
	doc.SetRoot(root)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("serialize token: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

// sign adds an enveloped signature over the response element, embedding
// the broker certificate in the KeyInfo block.
func (b *Broker) sign(root *etree.Element) (*etree.Element, error) {
	keyStore := dsig.TLSCertKeyStore(tls.Certificate{
		Certificate: [][]byte{b.cert.Raw},
		PrivateKey:  b.key,
	})

	ctx := dsig.NewDefaultSigningContext(keyStore)
	ctx.Canonicalizer = dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")

	return ctx.SignEnveloped(root)
}

// Tamper replaces the first occurrence of old inside a signed token,
// keeping the base64 encoding intact. The result decodes fine but must
// fail signature verification.
func Tamper(t testing.TB, token, old, replacement string) string {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("failed to decode token for tampering: %v", err)
	}

	doc := string(raw)
	if !strings.Contains(doc, old) {
		t.Fatalf("tamper target %q not found in token", old)
	}
	doc = strings.Replace(doc, old, replacement, 1)

	return base64.StdEncoding.EncodeToString([]byte(doc))
}

// generateSignerCert creates an issuer certificate with the given CN and
// serial, then a signer certificate issued by it carrying the signer
// serial. Only the signer certificate travels in tokens; the issuer DN
// survives in its Issuer field, which is all the trust gate inspects.
func generateSignerCert(issuerName, issuerSerial, signerSerial string) (*rsa.PrivateKey, *x509.Certificate, error) {
	issuerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("generate issuer key: %w", err)
	}

	issuerTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName:   issuerName,
			SerialNumber: issuerSerial,
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	signerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("generate signer key: %w", err)
	}

	signerTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject: pkix.Name{
			CommonName:   "Broker signing service",
			SerialNumber: signerSerial,
		},
		NotBefore: time.Now().Add(-time.Hour),
		NotAfter:  time.Now().Add(24 * time.Hour),
		KeyUsage:  x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, signerTemplate, issuerTemplate, &signerKey.PublicKey, issuerKey)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signer certificate: %w", err)
	}

	return signerKey, cert, nil
}
