package icelandauth

import (
	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
)

// parseCaddyfile sets up the handler from Caddyfile tokens.
//
// Syntax:
//
//	icelandauth {
//	    audience <value>
//	    destination <url>
//	    destination_ssn <ssn>
//	    auth_id <id>
//	    authentication <method> [<method>...]
//	    verify_ip
//	    log_raw_response
//	    trusted_cert_file <path>
//	    trusted_issuer_name <cn>
//	    trusted_issuer_serial <serial>
//	    trusted_signer_serial <serial>
//	    session_secret <secret>
//	    session_duration <duration>
//	    cookie_name <name>
//	}
func parseCaddyfile(h httpcaddyfile.Helper) (caddyhttp.MiddlewareHandler, error) {
	var g LoginGate
	err := g.UnmarshalCaddyfile(h.Dispenser)
	return &g, err
}

// UnmarshalCaddyfile implements caddyfile.Unmarshaler.
func (g *LoginGate) UnmarshalCaddyfile(d *caddyfile.Dispenser) error {
	d.Next() // consume directive name

	for d.NextBlock(0) {
		switch d.Val() {
		case "audience":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.Audience = d.Val()

		case "destination":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.Destination = d.Val()

		case "destination_ssn":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.DestinationSSN = d.Val()

		case "auth_id":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.AuthID = d.Val()

		case "authentication":
			args := d.RemainingArgs()
			if len(args) == 0 {
				return d.ArgErr()
			}
			g.Authentication = append(g.Authentication, args...)

		case "verify_ip":
			g.VerifyIPAddress = true

		case "log_raw_response":
			g.LogRawResponse = true

		case "trusted_cert_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.TrustedCertFile = d.Val()

		case "trusted_issuer_name":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.TrustedIssuerName = d.Val()

		case "trusted_issuer_serial":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.TrustedIssuerSerial = d.Val()

		case "trusted_signer_serial":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.TrustedSignerSerial = d.Val()

		case "session_secret":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.SessionSecret = d.Val()

		case "session_duration":
			if !d.NextArg() {
				return d.ArgErr()
			}
			dur, err := caddy.ParseDuration(d.Val())
			if err != nil {
				return d.Errf("invalid session_duration: %v", err)
			}
			g.SessionDuration = caddy.Duration(dur)

		case "cookie_name":
			if !d.NextArg() {
				return d.ArgErr()
			}
			g.CookieName = d.Val()

		default:
			return d.Errf("unknown directive: %s", d.Val())
		}
	}

	return nil
}
