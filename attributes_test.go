//go:build unit

package icelandauth

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"testing"

	"github.com/djgunni86/icelandauth/internal/adapters/driven/decode"
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// attributeDoc builds a response document carrying the given raw
// AttributeStatement body.
func attributeDoc(t *testing.T, statementXML string) domain.Attributes {
	t.Helper()

	raw := fmt.Sprintf(`<Response><Assertion>%s</Assertion></Response>`, statementXML)
	doc, err := decode.NewEtreeDecoder().Decode(base64.StdEncoding.EncodeToString([]byte(raw)))
	if err != nil {
		t.Fatalf("failed to decode fixture document: %v", err)
	}
	return extractAttributes(doc)
}

func TestExtractAttributes(t *testing.T) {
	attrs := attributeDoc(t, `<AttributeStatement>`+
		`<Attribute Name="UserSSN" FriendlyName="UserSSN" NameFormat="urn:format:basic">`+
		`<AttributeValue>1203894569</AttributeValue></Attribute>`+
		`<Attribute Name="Name"><AttributeValue>Jon Jonsson</AttributeValue></Attribute>`+
		`<Attribute Name="Empty"/>`+
		`</AttributeStatement>`)

	want := domain.Attributes{
		{Name: "UserSSN", FriendlyName: "UserSSN", Format: "urn:format:basic", Value: "1203894569"},
		{Name: "Name", Value: "Jon Jonsson"},
		{Name: "Empty"},
	}
	if !reflect.DeepEqual(attrs, want) {
		t.Errorf("extractAttributes() = %+v, want %+v", attrs, want)
	}
}

func TestExtractAttributes_NoStatement(t *testing.T) {
	attrs := attributeDoc(t, "")
	if attrs != nil {
		t.Errorf("extractAttributes() = %+v, want nil without a statement", attrs)
	}
}

func TestExtractAttributes_PreservesDocumentOrder(t *testing.T) {
	attrs := attributeDoc(t, `<AttributeStatement>`+
		`<Attribute Name="c"><AttributeValue>3</AttributeValue></Attribute>`+
		`<Attribute Name="a"><AttributeValue>1</AttributeValue></Attribute>`+
		`<Attribute Name="b"><AttributeValue>2</AttributeValue></Attribute>`+
		`</AttributeStatement>`)

	var names []string
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	if !reflect.DeepEqual(names, []string{"c", "a", "b"}) {
		t.Errorf("attribute order = %v, want document order", names)
	}
}
