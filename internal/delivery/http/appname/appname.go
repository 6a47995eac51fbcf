// Package appname bridges HTTP requests to the pure app resolver.
package appname

import (
	"passport/internal/domain/access"

	"github.com/labstack/echo/v4"
)

// HeaderAppName is the explicit app-signaling header accepted on every
// endpoint.
const HeaderAppName = "x-app-name"

// FromRequest resolves the requesting application's name. bodyApp is
// the `app` field of an already-bound JSON body, empty when the request
// has none; the query parameter and header complete the explicit tier,
// then Origin and Referer are consulted.
func FromRequest(c echo.Context, bodyApp, rootDomain string) string {
	explicit := bodyApp
	if explicit == "" {
		explicit = c.QueryParam("app")
	}
	if explicit == "" {
		explicit = c.Request().Header.Get(HeaderAppName)
	}

	return access.ResolveApp(access.RequestHints{
		ExplicitApp: explicit,
		Origin:      c.Request().Header.Get(echo.HeaderOrigin),
		Referer:     c.Request().Header.Get("Referer"),
	}, rootDomain)
}
