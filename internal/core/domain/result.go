package domain

import "time"

// Delegation carries the "on behalf" fields asserted when the
// authenticated subject acts for another identity (procuration).
// All fields are extracted as-is; none of them affect Valid().
type Delegation struct {
	// OnBehalfRight is the kind of right the delegate holds, e.g.
	// "Procuration" or "AccessControl".
	OnBehalfRight string

	// OnBehalfName is the display name of the identity being acted for.
	OnBehalfName string

	// OnBehalfUserSSN is the national identifier of the identity being
	// acted for.
	OnBehalfUserSSN string

	// OnBehalfValue is the broker-defined delegation value.
	OnBehalfValue string

	// OnBehalfValidUntil is the end of the delegation's own validity
	// window. Zero when absent or unparsable.
	OnBehalfValidUntil time.Time
}

// Empty reports whether no delegation fields were asserted.
func (d Delegation) Empty() bool {
	return d.OnBehalfRight == "" &&
		d.OnBehalfName == "" &&
		d.OnBehalfUserSSN == "" &&
		d.OnBehalfValue == "" &&
		d.OnBehalfValidUntil.IsZero()
}

// LoginResult is the outcome of verifying one login token.
//
// Each boolean flag is owned by exactly one pipeline stage. A flag not
// set by its stage stays false, with two documented exceptions that
// default true when the corresponding policy check is not configured:
// DestinationOk (no expected destination) and AuthIDOk / DestinationSSNOk
// (no expected identifier). Valid() derives from the flags and nothing
// else.
type LoginResult struct {
	// SignatureOk is true when the embedded XML signature verified
	// against the certificate carried in the token's KeyInfo.
	SignatureOk bool

	// CertOk is true when the embedded certificate's issuer CN, issuer
	// SERIALNUMBER and subject SERIALNUMBER all match the trust anchor.
	CertOk bool

	// AudienceOk is true when the assertion's audience restriction
	// matches the expected audience (case-insensitive).
	AudienceOk bool

	// DestinationOk is true when no destination is expected, or the
	// response's declared destination matches it (case-insensitive).
	DestinationOk bool

	// TimeOk is true when NotBefore < now < NotOnOrAfter, strictly.
	TimeOk bool

	// IPOk is true when IP verification is disabled, no client IP was
	// observed, or the IPAddress attribute equals the observed IP.
	IPOk bool

	// AuthMethodOk is true when no method restriction is configured, or
	// the Authentication attribute is one of the allowed methods.
	AuthMethodOk bool

	// AuthIDOk is true when no AuthID is expected, the token carries no
	// AuthID attribute, or the two are equal.
	AuthIDOk bool

	// DestinationSSNOk is true when no destination identifier is
	// expected, or the DestinationSSN attribute equals it.
	DestinationSSNOk bool

	// UserSSN is the authenticated subject's national identifier.
	UserSSN string

	// Name is the authenticated subject's display name.
	Name string

	// AuthenticationMethod is the method the broker asserts was used,
	// e.g. "Rafraen skilriki".
	AuthenticationMethod string

	// Delegation holds the on-behalf record, if any.
	Delegation Delegation

	// Attributes is the raw attribute sequence in document order.
	Attributes []Attribute
}

// Valid reports whether every check passed. There is no way to be
// partially valid: a single false flag rejects the login.
func (r *LoginResult) Valid() bool {
	return r.SignatureOk &&
		r.CertOk &&
		r.AudienceOk &&
		r.DestinationOk &&
		r.TimeOk &&
		r.IPOk &&
		r.AuthMethodOk &&
		r.AuthIDOk &&
		r.DestinationSSNOk
}
