//go:build unit

package icelandauth

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

func TestParseBrokerTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "rfc3339 utc",
			value: "2026-03-01T12:00:00Z",
			want:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "rfc3339 with offset",
			value: "2026-03-01T12:00:00+02:00",
			want:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "legacy zone-less is utc",
			value: "2026-03-01T12:00:00",
			want:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{name: "garbage", value: "yesterday"},
		{name: "empty", value: ""},
		{name: "date only", value: "2026-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBrokerTime(tt.value)
			if ok != tt.ok {
				t.Fatalf("parseBrokerTime(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseBrokerTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// conditionsDoc builds a minimal response document with a raw Conditions
// element, for exercising the structural rules directly.
func conditionsDoc(t *testing.T, conditionsXML string) *etree.Document {
	t.Helper()

	raw := fmt.Sprintf(`<Response Destination="https://app.example/login"><Assertion>%s</Assertion></Response>`, conditionsXML)
	doc, err := decode.NewEtreeDecoder().Decode(base64.StdEncoding.EncodeToString([]byte(raw)))
	if err != nil {
		t.Fatalf("failed to decode fixture document: %v", err)
	}
	return doc
}

func TestValidateConditions_StructuralErrors(t *testing.T) {
	settings := &domain.Settings{Audience: "app.example"}
	now := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		xml  string
	}{
		{"no conditions element", ""},
		{"missing NotBefore", `<Conditions NotOnOrAfter="2026-03-01T12:10:00Z"/>`},
		{"missing NotOnOrAfter", `<Conditions NotBefore="2026-03-01T12:00:00Z"/>`},
		{"no attributes at all", `<Conditions/>`},
		{"unparsable NotBefore", `<Conditions NotBefore="soon" NotOnOrAfter="2026-03-01T12:10:00Z"/>`},
		{"unparsable NotOnOrAfter", `<Conditions NotBefore="2026-03-01T12:00:00Z" NotOnOrAfter="later"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := conditionsDoc(t, tt.xml)
			_, err := validateConditions(doc, settings, now, zap.NewNop())
			if err == nil {
				t.Fatal("validateConditions() accepted a malformed window")
			}
		})
	}
}

func TestValidateConditions_LegacyTimestamps(t *testing.T) {
	settings := &domain.Settings{Audience: "app.example"}
	doc := conditionsDoc(t, `<Conditions NotBefore="2026-03-01T12:00:00" NotOnOrAfter="2026-03-01T12:10:00">`+
		`<AudienceRestriction><Audience>app.example</Audience></AudienceRestriction></Conditions>`)

	delta, err := validateConditions(doc, settings, time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC), zap.NewNop())
	if err != nil {
		t.Fatalf("validateConditions() error: %v", err)
	}
	if !delta.timeOk {
		t.Error("timeOk = false inside a legacy-format window")
	}
	if !delta.audienceOk {
		t.Error("audienceOk = false for a matching audience")
	}
}

func TestValidateConditions_MissingAudienceElement(t *testing.T) {
	settings := &domain.Settings{Audience: "app.example"}
	doc := conditionsDoc(t, `<Conditions NotBefore="2026-03-01T12:00:00Z" NotOnOrAfter="2026-03-01T12:10:00Z"/>`)

	delta, err := validateConditions(doc, settings, time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC), zap.NewNop())
	if err != nil {
		t.Fatalf("validateConditions() error: %v", err)
	}
	// An audience is always expected; its absence is a mismatch, not an
	// error.
	if delta.audienceOk {
		t.Error("audienceOk = true without an Audience element")
	}
	if !delta.timeOk {
		t.Error("timeOk flipped by the missing audience")
	}
}
