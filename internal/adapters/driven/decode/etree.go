// Package decode turns raw broker tokens into XML document trees.
package decode

import (
	"bytes"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	rtvalidator "github.com/mattermost/xml-roundtrip-validator"

	"github.com/djgunni86/icelandauth/internal/core/domain"
	"github.com/djgunni86/icelandauth/internal/core/ports"
)

// EtreeDecoder decodes base64 login tokens into etree documents.
//
// etree does not fetch external entities and leaves DOCTYPE declarations
// as inert directives, so hostile tokens cannot trigger entity expansion
// or network fetches during parsing. The round-trip validator additionally
// rejects documents that exploit weaknesses in Go XML tokenization.
type EtreeDecoder struct{}

// NewEtreeDecoder creates a token decoder.
func NewEtreeDecoder() *EtreeDecoder {
	return &EtreeDecoder{}
}

// Decode base64-decodes, UTF-8-checks, and parses the token.
// Whitespace inside the document is preserved; the signature digest
// depends on it.
func (d *EtreeDecoder) Decode(token string) (*etree.Document, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, domain.TokenError("token is not valid base64", err)
	}

	if !utf8.Valid(raw) {
		return nil, domain.TokenError("token is not valid UTF-8", nil)
	}

	if err := rtvalidator.Validate(bytes.NewReader(raw)); err != nil {
		return nil, domain.TokenError("token XML failed round-trip validation", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.TokenError("token is not well-formed XML", err)
	}
	if doc.Root() == nil {
		return nil, domain.TokenError("token XML has no root element", nil)
	}

	return doc, nil
}

var _ ports.TokenDecoder = (*EtreeDecoder)(nil)

// FindFirst returns the first element in document order whose local name
// matches tag, searching el and its descendants. Namespace prefixes are
// ignored; the broker is not consistent about them.
func FindFirst(el *etree.Element, tag string) *etree.Element {
	if el.Tag == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := FindFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindChild returns the first direct child with the given local name.
func FindChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// FindChildren returns all direct children with the given local name,
// in document order.
func FindChildren(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}
