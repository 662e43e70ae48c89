//go:build go1.18 && unit

package decode

import (
	"encoding/base64"
	"testing"
)

// FuzzDecode feeds arbitrary tokens through the decoder. The decoder
// must never panic and must never return a document together with an
// error.
func FuzzDecode(f *testing.F) {
	f.Add("")
	f.Add("!!!not-base64!!!")
	f.Add(base64.StdEncoding.EncodeToString([]byte("<Response/>")))
	f.Add(base64.StdEncoding.EncodeToString([]byte("<Response><Assertion></Response>")))
	f.Add(base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe}))
	f.Add(base64.StdEncoding.EncodeToString([]byte(`<?xml version="1.0"?><!DOCTYPE r [<!ENTITY x "y">]><r>&x;</r>`)))

	decoder := NewEtreeDecoder()

	f.Fuzz(func(t *testing.T, token string) {
		doc, err := decoder.Decode(token)
		if err != nil && doc != nil {
			t.Error("Decode returned both a document and an error")
		}
		if err == nil && (doc == nil || doc.Root() == nil) {
			t.Error("Decode returned no document without an error")
		}
	})
}
