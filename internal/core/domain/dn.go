package domain

import "strings"

// DNComponent is one name=value pair of an X.509 distinguished name,
// e.g. {Name: "SERIALNUMBER", Value: "5210002790"}.
type DNComponent struct {
	Name  string
	Value string
}

// DNComponents is an ordered distinguished-name component list.
type DNComponents []DNComponent

// Get returns the value of the first component with the given name
// (case-insensitive). A missing component yields ("", false) so that an
// absent field can never compare equal to a non-empty expected value.
func (c DNComponents) Get(name string) (string, bool) {
	for _, comp := range c {
		if strings.EqualFold(comp.Name, name) {
			return comp.Value, true
		}
	}
	return "", false
}

// ParseDistinguishedName splits an RFC 2253 style distinguished-name
// string into its components. Commas and plus signs escaped with a
// backslash are treated as literal characters; anything that does not
// form a name=value pair is skipped.
func ParseDistinguishedName(dn string) DNComponents {
	var comps DNComponents
	for _, part := range splitUnescaped(dn, ',') {
		// Multi-valued RDNs are joined with '+'; each half is its own
		// component.
		for _, rdn := range splitUnescaped(part, '+') {
			name, value, ok := strings.Cut(rdn, "=")
			if !ok {
				continue
			}
			name = strings.TrimSpace(name)
			value = unescapeDNValue(strings.TrimSpace(value))
			if name == "" {
				continue
			}
			comps = append(comps, DNComponent{Name: name, Value: value})
		}
	}
	return comps
}

// splitUnescaped splits s on sep, honoring backslash escapes.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte('\\')
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	parts = append(parts, cur.String())
	return parts
}

// unescapeDNValue removes backslash escapes from a DN attribute value.
func unescapeDNValue(v string) string {
	if !strings.ContainsRune(v, '\\') {
		return v
	}
	var out strings.Builder
	escaped := false
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			out.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}
