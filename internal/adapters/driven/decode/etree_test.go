//go:build unit

package decode

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/djgunni86/icelandauth/internal/core/domain"
)

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestEtreeDecoder_Decode(t *testing.T) {
	decoder := NewEtreeDecoder()

	testCases := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid document", encode(`<Response><Assertion/></Response>`), false},
		{"leading and trailing whitespace", "  " + encode(`<Response/>`) + "\n", false},
		{"not base64", "!!!not-base64!!!", true},
		{"base64 of invalid utf8", base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x3c, 0x61, 0x3e}), true},
		{"not xml", encode("just some text"), true},
		{"unclosed element", encode(`<Response><Assertion></Response>`), true},
		{"empty document", encode(""), true},
		{"empty token", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := decoder.Decode(tc.token)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Decode() expected error")
				}
				if doc != nil {
					t.Error("Decode() must not return a partial document on error")
				}
				var appErr *domain.AppError
				if !errors.As(err, &appErr) || appErr.Code != domain.ErrCodeTokenInvalid {
					t.Errorf("Decode() error = %v, want code %s", err, domain.ErrCodeTokenInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if doc == nil || doc.Root() == nil {
				t.Fatal("Decode() returned no document")
			}
		})
	}
}

// TestEtreeDecoder_PreservesWhitespace pins that text content is kept
// verbatim; signature digests depend on it.
func TestEtreeDecoder_PreservesWhitespace(t *testing.T) {
	decoder := NewEtreeDecoder()

	doc, err := decoder.Decode(encode("<Response><Value>  spaced  </Value></Response>"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	val := FindFirst(doc.Root(), "Value")
	if val == nil {
		t.Fatal("Value element not found")
	}
	if got := val.Text(); got != "  spaced  " {
		t.Errorf("text = %q, want %q", got, "  spaced  ")
	}
}

// TestEtreeDecoder_DoctypeRejected verifies hostile documents with
// doctype declarations do not slip through the round-trip validator.
func TestEtreeDecoder_EntityNotExpanded(t *testing.T) {
	decoder := NewEtreeDecoder()

	token := encode(`<?xml version="1.0"?><!DOCTYPE r [<!ENTITY x "boom">]><Response>&x;</Response>`)
	doc, err := decoder.Decode(token)
	if err != nil {
		// Rejecting the document outright is also acceptable.
		return
	}
	if got := doc.Root().Text(); got == "boom" {
		t.Errorf("custom entity was expanded to %q", got)
	}
}

func TestFindFirst(t *testing.T) {
	decoder := NewEtreeDecoder()
	doc, err := decoder.Decode(encode(
		`<saml2p:Response xmlns:saml2p="urn:x"><saml2:Assertion xmlns:saml2="urn:y"><saml2:Conditions NotBefore="a"/></saml2:Assertion></saml2p:Response>`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	// Lookup ignores namespace prefixes.
	cond := FindFirst(doc.Root(), "Conditions")
	if cond == nil {
		t.Fatal("Conditions not found")
	}
	if got := cond.SelectAttrValue("NotBefore", ""); got != "a" {
		t.Errorf("NotBefore = %q", got)
	}

	if el := FindFirst(doc.Root(), "Missing"); el != nil {
		t.Errorf("FindFirst(Missing) = %v, want nil", el)
	}
}

func TestFindChildAndChildren(t *testing.T) {
	decoder := NewEtreeDecoder()
	doc, err := decoder.Decode(encode(
		`<Statement><Attribute Name="a"/><Other/><Attribute Name="b"/></Statement>`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	root := doc.Root()

	first := FindChild(root, "Attribute")
	if first == nil || first.SelectAttrValue("Name", "") != "a" {
		t.Errorf("FindChild returned %v, want first Attribute", first)
	}

	all := FindChildren(root, "Attribute")
	if len(all) != 2 {
		t.Fatalf("FindChildren returned %d elements, want 2", len(all))
	}
	if all[0].SelectAttrValue("Name", "") != "a" || all[1].SelectAttrValue("Name", "") != "b" {
		t.Error("FindChildren out of document order")
	}

	if FindChild(root, "Missing") != nil {
		t.Error("FindChild(Missing) should be nil")
	}
}
