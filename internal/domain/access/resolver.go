// Package access implements the pure decision logic of the gateway:
// resolving which application a request belongs to and deciding whether
// a verified identity may use it. Nothing in this package performs I/O.
package access

import (
	"net/url"
	"strings"
)

// RequestHints are the per-request inputs app resolution may draw from.
type RequestHints struct {
	ExplicitApp string // `app` body/query field or x-app-name header, used verbatim when set.
	Origin      string // Origin request header.
	Referer     string // Referer request header.
}

// ResolveApp derives the logical application name from request context.
// Precedence is explicit parameter > Origin > Referer. An app hosted at
// <app>.<rootDomain> is named by its first subdomain label; an origin on
// the bare root domain (or anywhere else) yields "".
//
// The function is deterministic: the same hints always resolve to the
// same name.
func ResolveApp(hints RequestHints, rootDomain string) string {
	if explicit := strings.TrimSpace(hints.ExplicitApp); explicit != "" {
		return explicit
	}

	if app := appFromURL(hints.Origin, rootDomain); app != "" {
		return app
	}

	return appFromURL(hints.Referer, rootDomain)
}

// appFromURL extracts the subdomain app name from an absolute URL whose
// host sits directly under rootDomain. Hosts with fewer than three
// labels carry no app information.
func appFromURL(raw, rootDomain string) string {
	if raw == "" || rootDomain == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}

	suffix := strings.Join(labels[len(labels)-2:], ".")
	if suffix != strings.ToLower(rootDomain) {
		return ""
	}

	return labels[0]
}
