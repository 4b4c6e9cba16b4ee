// Package cookie maps token pairs to and from the HTTP cookie pair. All
// session state the browser holds lives here; nothing is readable by scripts.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// The refresh cookie only ever travels to the auth endpoints.
	accessPath  = "/"
	refreshPath = "/auth"
)

// Config controls the security attributes applied to both cookies.
type Config struct {
	Domain     string
	Secure     bool
	SameSite   http.SameSite
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Manager writes, reads, and clears the session cookie pair.
type Manager struct {
	cfg Config
}

func NewManager(cfg Config) *Manager {
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteLaxMode
	}
	return &Manager{cfg: cfg}
}

// Write sets both cookies with Max-Age matching each token's lifetime.
func (m *Manager) Write(c echo.Context, pair *domain.TokenPair) {
	c.SetCookie(m.build(AccessCookie, pair.AccessToken, accessPath, m.cfg.AccessTTL))
	c.SetCookie(m.build(RefreshCookie, pair.RefreshToken, refreshPath, m.cfg.RefreshTTL))
}

// ReadAccess extracts the access token cookie, if present.
func (m *Manager) ReadAccess(c echo.Context) (string, bool) {
	return read(c, AccessCookie)
}

// ReadRefresh extracts the refresh token cookie, if present.
func (m *Manager) ReadRefresh(c echo.Context) (string, bool) {
	return read(c, RefreshCookie)
}

// Clear expires both cookies. Attributes must match the ones used on Write or
// browsers keep the originals.
func (m *Manager) Clear(c echo.Context) {
	access := m.build(AccessCookie, "", accessPath, 0)
	access.MaxAge = -1
	access.Expires = time.Unix(0, 0)
	refresh := m.build(RefreshCookie, "", refreshPath, 0)
	refresh.MaxAge = -1
	refresh.Expires = time.Unix(0, 0)
	c.SetCookie(access)
	c.SetCookie(refresh)
}

func (m *Manager) build(name, value, path string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   m.cfg.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: m.cfg.SameSite,
	}
}

func read(c echo.Context, name string) (string, bool) {
	ck, err := c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// ParseSameSite maps a config string to the http.SameSite policy.
// Unrecognised values default to Lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
