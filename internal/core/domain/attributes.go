package domain

// Attribute names used by the broker's attribute statement.
// This is the wire vocabulary; lookups always go through First so that
// the first occurrence wins when a name is repeated.
const (
	AttrUserSSN          = "UserSSN"
	AttrName             = "Name"
	AttrAuthentication   = "Authentication"
	AttrIPAddress        = "IPAddress"
	AttrAuthID           = "AuthID"
	AttrDestinationSSN   = "DestinationSSN"
	AttrOnBehalfRight    = "OnBehalfRight"
	AttrOnBehalfName     = "OnBehalfName"
	AttrOnBehalfUserSSN  = "OnBehalfUserSSN"
	AttrOnBehalfValue    = "OnBehalfValue"
	AttrOnBehalfValidity = "OnBehalfValidity"
)

// Attribute is one entry of the assertion's attribute statement, in
// document order.
type Attribute struct {
	// Name is the attribute's declared name.
	Name string

	// FriendlyName is the optional human-readable name.
	FriendlyName string

	// Format is the declared name-format URI.
	Format string

	// Value is the text of the attribute's first value element.
	Value string
}

// Attributes is an ordered attribute sequence.
type Attributes []Attribute

// First returns the value of the first attribute with the given name.
// Duplicate names are tolerated; occurrences after the first are ignored.
func (a Attributes) First(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Get is like First but returns the empty string for a missing name.
func (a Attributes) Get(name string) string {
	v, _ := a.First(name)
	return v
}
