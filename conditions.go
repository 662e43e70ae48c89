package icelandauth

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// brokerTimeLayouts are the timestamp formats the broker has been seen
// to emit. RFC 3339 is the documented form; the zone-less layout shows
// up in older responses and is taken as UTC.
var brokerTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseBrokerTime parses a broker timestamp, normalized to UTC.
func parseBrokerTime(value string) (time.Time, bool) {
	for _, layout := range brokerTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// conditionsDelta is the partial result of the conditions stage.
type conditionsDelta struct {
	timeOk        bool
	audienceOk    bool
	destinationOk bool
}

// validateConditions checks the assertion's validity window, audience
// restriction, and the response's declared destination.
//
// A Conditions element without both NotBefore and NotOnOrAfter is a
// malformed token and returns an error; the caller discards every other
// outcome. All other mismatches only leave their flag false.
func validateConditions(doc *etree.Document, s *domain.Settings, now time.Time, log *zap.Logger) (conditionsDelta, error) {
	var delta conditionsDelta

	root := doc.Root()
	cond := decode.FindFirst(root, "Conditions")
	if cond == nil {
		return delta, domain.MalformedFormatError("no Conditions element")
	}

	notBeforeRaw := cond.SelectAttrValue("NotBefore", "")
	notOnOrAfterRaw := cond.SelectAttrValue("NotOnOrAfter", "")
	if notBeforeRaw == "" || notOnOrAfterRaw == "" {
		return delta, domain.MalformedFormatError("Conditions must carry NotBefore and NotOnOrAfter")
	}

	notBefore, okBefore := parseBrokerTime(notBeforeRaw)
	notOnOrAfter, okAfter := parseBrokerTime(notOnOrAfterRaw)
	if !okBefore || !okAfter {
		return delta, domain.MalformedFormatError("Conditions carry unparsable timestamps")
	}

	// Both bounds are strict: a token is not yet valid at NotBefore
	// itself and already expired at NotOnOrAfter itself.
	switch {
	case !now.After(notBefore):
		log.Warn("login token not yet valid",
			zap.Time("not_before", notBefore),
			zap.Time("now", now),
		)
	case !now.Before(notOnOrAfter):
		log.Warn("login token expired",
			zap.Time("not_on_or_after", notOnOrAfter),
			zap.Time("now", now),
		)
	default:
		delta.timeOk = true
	}

	audience := ""
	if audEl := decode.FindFirst(cond, "Audience"); audEl != nil {
		audience = strings.TrimSpace(audEl.Text())
	}
	if strings.EqualFold(audience, s.Audience) {
		delta.audienceOk = true
	} else {
		log.Warn("audience restriction mismatch",
			zap.String("expected", s.Audience),
			zap.String("received", audience),
		)
	}

	// No expected destination configured disables the check; this is a
	// documented default, not an omission.
	if s.Destination == "" {
		delta.destinationOk = true
	} else {
		destination := root.SelectAttrValue("Destination", "")
		if strings.EqualFold(destination, s.Destination) {
			delta.destinationOk = true
		} else {
			log.Warn("destination mismatch",
				zap.String("expected", s.Destination),
				zap.String("received", destination),
			)
		}
	}

	return delta, nil
}
