package ports

import "github.com/beevik/etree"

// TokenDecoder turns the broker's raw login token into an XML document
// tree. This is a port interface - implementations are adapters.
//
// Decode must never resolve external entities or expand DTDs; the token
// is adversarial input. Any failure (bad base64, bad UTF-8, malformed
// XML) returns a nil document and an error - no partial document is ever
// returned.
type TokenDecoder interface {
	Decode(token string) (*etree.Document, error)
}
