package icelandauth

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/djgunni86/icelandauth/internal/core/domain"
)

const Version = "1.2.0"

func init() {
	caddy.RegisterModule(LoginGate{})
	httpcaddyfile.RegisterHandlerDirective("icelandauth", parseCaddyfile)
}

// Default session parameters, overridable per directive.
const (
	defaultCookieName      = "icelandauth_session"
	defaultSessionDuration = time.Hour
)

// LoginGate is a Caddy HTTP handler that guards a site with national
// eID broker logins. A POST carrying a broker token is verified by the
// core pipeline; a valid login yields identity headers for the upstream
// and a signed session cookie. Requests without a valid session are
// rejected with 401.
//
// The handler only consumes the core's LoginResult - session mechanics
// never reach the verification pipeline.
type LoginGate struct {
	// Configuration embedded directly
	Config

	// SessionSecret signs session cookies (HS256). Required.
	SessionSecret string `json:"session_secret"`

	// SessionDuration is the session cookie lifetime. Defaults to 1h.
	SessionDuration caddy.Duration `json:"session_duration,omitempty"`

	// CookieName overrides the session cookie name.
	CookieName string `json:"cookie_name,omitempty"`

	// Runtime state (not serialized)
	verifier        *Verifier
	logger          *zap.Logger
	sessionDuration time.Duration
	cookieName      string
}

// CaddyModule returns the Caddy module information.
func (LoginGate) CaddyModule() caddy.ModuleInfo {
	return caddy.ModuleInfo{
		ID:  "http.handlers.icelandauth",
		New: func() caddy.Module { return new(LoginGate) },
	}
}

// Provision sets up the module.
func (g *LoginGate) Provision(ctx caddy.Context) error {
	g.logger = ctx.Logger()

	settings, err := g.Config.ToSettings()
	if err != nil {
		return fmt.Errorf("resolve verification settings: %w", err)
	}

	verifier, err := New(*settings, WithLogger(g.logger))
	if err != nil {
		return fmt.Errorf("construct verifier: %w", err)
	}
	g.verifier = verifier

	g.sessionDuration = time.Duration(g.SessionDuration)
	if g.sessionDuration <= 0 {
		g.sessionDuration = defaultSessionDuration
	}
	g.cookieName = g.CookieName
	if g.cookieName == "" {
		g.cookieName = defaultCookieName
	}

	g.logger.Info("icelandauth login gate provisioned",
		zap.String("version", Version),
		zap.String("audience", settings.Audience),
		zap.Duration("session_duration", g.sessionDuration),
	)
	return nil
}

// Validate checks required configuration.
func (g *LoginGate) Validate() error {
	if g.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}
	return nil
}

// ServeHTTP implements caddyhttp.MiddlewareHandler.
func (g *LoginGate) ServeHTTP(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler) error {
	if r.Method == http.MethodPost {
		if token := r.PostFormValue("token"); token != "" {
			return g.handleLogin(w, r, next, token)
		}
	}

	claims, err := g.parseSessionCookie(r)
	if err != nil {
		return g.unauthorized(w, domain.LoginRejectedError("no valid session"))
	}

	setIdentityHeaders(r, claims.Subject, claims.Name, claims.AuthMethod)
	return next.ServeHTTP(w, r)
}

// handleLogin verifies a broker token and establishes a session.
func (g *LoginGate) handleLogin(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler, token string) error {
	result := g.verifier.Verify(token, clientIP(r))
	if !result.Valid() {
		return g.unauthorized(w, domain.LoginRejectedError("login token rejected"))
	}

	cookie, err := g.issueSessionCookie(result)
	if err != nil {
		g.logger.Error("session cookie issuance failed", zap.Error(err))
		return g.serviceError(w)
	}
	http.SetCookie(w, cookie)

	setIdentityHeaders(r, result.UserSSN, result.Name, result.AuthenticationMethod)

	g.logger.Info("login accepted",
		zap.String("user_ssn", result.UserSSN),
		zap.String("auth_method", result.AuthenticationMethod),
	)
	return next.ServeHTTP(w, r)
}

// sessionClaims defines the JWT claims structure for sessions.
type sessionClaims struct {
	jwt.RegisteredClaims
	Name       string `json:"name,omitempty"`
	AuthMethod string `json:"auth_method,omitempty"`
}

// issueSessionCookie creates a signed session cookie from a valid login.
func (g *LoginGate) issueSessionCookie(result *domain.LoginResult) (*http.Cookie, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   result.UserSSN,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.sessionDuration)),
		},
		Name:       result.Name,
		AuthMethod: result.AuthenticationMethod,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.SessionSecret))
	if err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     g.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(g.sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// parseSessionCookie validates the session cookie and returns its claims.
func (g *LoginGate) parseSessionCookie(r *http.Request) (*sessionClaims, error) {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(cookie.Value, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(g.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

// setIdentityHeaders exposes the verified identity to the upstream.
func setIdentityHeaders(r *http.Request, userSSN, name, method string) {
	r.Header.Set("X-Icelandauth-User-Ssn", userSSN)
	r.Header.Set("X-Icelandauth-Name", name)
	r.Header.Set("X-Icelandauth-Auth-Method", method)
}

// clientIP extracts the client address without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// unauthorized writes a 401 JSON error body.
func (g *LoginGate) unauthorized(w http.ResponseWriter, appErr *domain.AppError) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code.HTTPStatus())
	return json.NewEncoder(w).Encode(domain.NewJSONErrorResponse(appErr))
}

// serviceError writes a 500 JSON error body.
func (g *LoginGate) serviceError(w http.ResponseWriter) error {
	appErr := domain.ServiceError("session could not be established")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code.HTTPStatus())
	return json.NewEncoder(w).Encode(domain.NewJSONErrorResponse(appErr))
}

// Interface guards
var (
	_ caddy.Module                = (*LoginGate)(nil)
	_ caddy.Provisioner           = (*LoginGate)(nil)
	_ caddy.Validator             = (*LoginGate)(nil)
	_ caddyhttp.MiddlewareHandler = (*LoginGate)(nil)
	_ caddyfile.Unmarshaler       = (*LoginGate)(nil)
)
