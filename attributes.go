package icelandauth

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// extractAttributes returns the assertion's attribute sequence in
// document order. An absent AttributeStatement yields an empty sequence,
// not an error; downstream checks then follow their absent-value rules.
func extractAttributes(doc *etree.Document) domain.Attributes {
	stmt := decode.FindFirst(doc.Root(), "AttributeStatement")
	if stmt == nil {
		return nil
	}

	var attrs domain.Attributes
	for _, el := range decode.FindChildren(stmt, "Attribute") {
		attr := domain.Attribute{
			Name:         el.SelectAttrValue("Name", ""),
			FriendlyName: el.SelectAttrValue("FriendlyName", ""),
			Format:       el.SelectAttrValue("NameFormat", ""),
		}
		if valEl := decode.FindChild(el, "AttributeValue"); valEl != nil {
			attr.Value = valEl.Text()
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// attributeDelta is the partial result of the attribute-policy stage.
type attributeDelta struct {
	ipOk             bool
	authMethodOk     bool
	authIDOk         bool
	destinationSSNOk bool

	userSSN    string
	name       string
	authMethod string
	delegation domain.Delegation
}

// validateAttributes checks the policy-bound attributes and extracts the
// identity fields. Duplicate attribute names are tolerated; the first
// occurrence wins and later duplicates are ignored.
func validateAttributes(attrs domain.Attributes, observedIP string, s *domain.Settings, log *zap.Logger) attributeDelta {
	delta := attributeDelta{
		userSSN:    attrs.Get(domain.AttrUserSSN),
		name:       attrs.Get(domain.AttrName),
		authMethod: attrs.Get(domain.AttrAuthentication),
		delegation: extractDelegation(attrs),
	}

	delta.ipOk = checkIPAddress(attrs, observedIP, s, log)
	delta.authMethodOk = checkAuthMethod(delta.authMethod, s, log)
	delta.authIDOk = checkAuthID(attrs, s, log)
	delta.destinationSSNOk = checkDestinationSSN(attrs, s, log)

	return delta
}

// checkIPAddress compares the asserted IP attribute to the observed
// client IP, exact string match. Verification disabled in settings or a
// missing observed IP passes by definition.
func checkIPAddress(attrs domain.Attributes, observedIP string, s *domain.Settings, log *zap.Logger) bool {
	if !s.VerifyIPAddress || observedIP == "" {
		return true
	}

	asserted := attrs.Get(domain.AttrIPAddress)
	if asserted == observedIP {
		return true
	}

	log.Warn("client IP mismatch",
		zap.String("expected", asserted),
		zap.String("received", observedIP),
	)
	return false
}

// checkAuthMethod verifies the asserted method against the allow-list.
// An empty allow-list accepts any method.
func checkAuthMethod(method string, s *domain.Settings, log *zap.Logger) bool {
	if s.AllowsAuthentication(method) {
		return true
	}

	log.Warn("authentication method not allowed",
		zap.Strings("expected", s.Authentication),
		zap.String("received", method),
	)
	return false
}

// checkAuthID compares the AuthID attribute to the expected identifier.
// The check passes when no identifier is expected or the token carries
// no AuthID attribute at all.
func checkAuthID(attrs domain.Attributes, s *domain.Settings, log *zap.Logger) bool {
	if s.AuthID == "" {
		return true
	}

	received, present := attrs.First(domain.AttrAuthID)
	if !present {
		return true
	}
	if received == s.AuthID {
		return true
	}

	log.Warn("auth id mismatch",
		zap.String("expected", s.AuthID),
		zap.String("received", received),
	)
	return false
}

// checkDestinationSSN compares the DestinationSSN attribute to the
// expected identifier. Unlike AuthID, a configured expectation makes the
// attribute mandatory.
func checkDestinationSSN(attrs domain.Attributes, s *domain.Settings, log *zap.Logger) bool {
	if s.DestinationSSN == "" {
		return true
	}

	received := attrs.Get(domain.AttrDestinationSSN)
	if received == s.DestinationSSN {
		return true
	}

	log.Warn("destination ssn mismatch",
		zap.String("expected", s.DestinationSSN),
		zap.String("received", received),
	)
	return false
}

// extractDelegation pulls the on-behalf record out of the attributes.
// The validity timestamp is parsed best-effort: an unparsable value
// leaves the field zero and is not an error.
func extractDelegation(attrs domain.Attributes) domain.Delegation {
	d := domain.Delegation{
		OnBehalfRight:   attrs.Get(domain.AttrOnBehalfRight),
		OnBehalfName:    attrs.Get(domain.AttrOnBehalfName),
		OnBehalfUserSSN: attrs.Get(domain.AttrOnBehalfUserSSN),
		OnBehalfValue:   attrs.Get(domain.AttrOnBehalfValue),
	}

	if raw := strings.TrimSpace(attrs.Get(domain.AttrOnBehalfValidity)); raw != "" {
		if t, ok := parseBrokerTime(raw); ok {
			d.OnBehalfValidUntil = t
		}
	}

	return d
}
