// Package icelandauth verifies login tokens issued by the national eID
// broker: signed, base64-encoded XML assertions stating that a user
// authenticated with a specific method, optionally on behalf of another
// identity, within a bounded time window, for a specific audience.
//
// Verification is a single pipeline per call: decode, verify the
// embedded signature and certificate against the configured trust
// anchor, validate the validity window and addressing conditions, check
// the policy-bound attributes, and aggregate everything into one
// LoginResult whose Valid method is the conjunction of every gate. Any
// failed gate rejects the login; there is no partial trust.
package icelandauth

import (
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// Re-export domain types for embedding applications
type Settings = domain.Settings
type LoginResult = domain.LoginResult
type Delegation = domain.Delegation
type Attribute = domain.Attribute
type Attributes = domain.Attributes
type DNComponent = domain.DNComponent
type DNComponents = domain.DNComponents

// Re-export attribute name constants
const (
	AttrUserSSN          = domain.AttrUserSSN
	AttrName             = domain.AttrName
	AttrAuthentication   = domain.AttrAuthentication
	AttrIPAddress        = domain.AttrIPAddress
	AttrAuthID           = domain.AttrAuthID
	AttrDestinationSSN   = domain.AttrDestinationSSN
	AttrOnBehalfRight    = domain.AttrOnBehalfRight
	AttrOnBehalfName     = domain.AttrOnBehalfName
	AttrOnBehalfUserSSN  = domain.AttrOnBehalfUserSSN
	AttrOnBehalfValue    = domain.AttrOnBehalfValue
	AttrOnBehalfValidity = domain.AttrOnBehalfValidity
)

// Re-export trust anchor defaults
const (
	DefaultTrustedIssuerName   = domain.DefaultTrustedIssuerName
	DefaultTrustedIssuerSerial = domain.DefaultTrustedIssuerSerial
	DefaultTrustedSignerSerial = domain.DefaultTrustedSignerSerial
)

// ParseDistinguishedName is re-exported for callers that inspect broker
// certificates themselves.
var ParseDistinguishedName = domain.ParseDistinguishedName
