// Package cookie owns the session cookie pair: the httpOnly credential
// cookie and its readable user-info mirror, both scoped to the shared
// root domain in production and to the bare host during local dev.
package cookie

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// TokenCookieName is the httpOnly signed session credential.
	TokenCookieName = "userToken"

	// UserCookieName mirrors the identity claim as plain JSON for
	// client-side reads.
	UserCookieName = "user"

	// LegacyCookieName is the cookie the pre-SSO scheme set.
	LegacyCookieName = "token"
)

// Attributes are the host-dependent cookie attributes shared by both
// cookies of the pair.
type Attributes struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// AttributesForHost computes cookie attributes from the request host.
// Pure: local-dev vs production behavior is testable without real
// network hosts.
func AttributesForHost(host, rootDomain string) Attributes {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	if isLoopback(hostname) {
		return Attributes{SameSite: http.SameSiteLaxMode}
	}

	return Attributes{
		Domain:   "." + rootDomain,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionPair sets both cookies with identical expiry and scope.
func SetSessionPair(c echo.Context, rootDomain, token string, claim *entity.IdentityClaim, maxAge time.Duration) error {
	attrs := AttributesForHost(c.Request().Host, rootDomain)
	expires := time.Now().Add(maxAge)

	c.SetCookie(&http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   attrs.Domain,
		Expires:  expires,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   attrs.Secure,
		HttpOnly: true,
		SameSite: attrs.SameSite,
	})

	payload, err := json.Marshal(claim)
	if err != nil {
		return errors.Wrap(err, "failed to encode user cookie")
	}

	c.SetCookie(&http.Cookie{
		Name:     UserCookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		Domain:   attrs.Domain,
		Expires:  expires,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   attrs.Secure,
		HttpOnly: false,
		SameSite: attrs.SameSite,
	})

	return nil
}

// ClearSessionPair expires both cookies. Clearing an already-cleared
// pair is a no-op with the same response shape, so logout stays
// idempotent.
func ClearSessionPair(c echo.Context, rootDomain string) {
	attrs := AttributesForHost(c.Request().Host, rootDomain)

	for _, name := range []string{TokenCookieName, UserCookieName} {
		httpOnly := name == TokenCookieName
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   attrs.Domain,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   attrs.Secure,
			HttpOnly: httpOnly,
			SameSite: attrs.SameSite,
		})
	}
}

// isLoopback reports whether the hostname is localhost or a loopback
// address.
func isLoopback(hostname string) bool {
	lower := strings.ToLower(hostname)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}

	return false
}
