package access

import (
	"fmt"
	"strings"
)

// Decision is the outcome of an access-policy evaluation. It is computed
// fresh per request and never cached, since both inputs vary per call.
type Decision struct {
	Allowed       bool
	PublicApp     bool   // The app accepts any verified identity.
	TrustedDomain bool   // The email carries the organizational suffix.
	Reason        string // Non-empty human-readable reason when denied.
}

// Policy decides whether a verified identity may use an application.
// Public apps accept any identity; every other app requires the trusted
// organizational email suffix. The policy is total: any (email, app)
// pair, including empty values, resolves to a Decision.
type Policy struct {
	trustedDomain string
	publicApps    map[string]struct{}
	denialReason  string
}

// NewPolicy builds a Policy from the trusted email domain (without the
// leading "@") and the public-app allow-list. Both are read-only
// process-wide configuration.
func NewPolicy(trustedDomain string, publicApps []string) *Policy {
	apps := make(map[string]struct{}, len(publicApps))
	for _, app := range publicApps {
		apps[strings.ToLower(strings.TrimSpace(app))] = struct{}{}
	}

	trusted := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(trustedDomain), "@"))

	return &Policy{
		trustedDomain: trusted,
		publicApps:    apps,
		denialReason:  fmt.Sprintf("Only @%s email addresses are allowed to access this application", trusted),
	}
}

// Decide evaluates the decision table for one (email, appName) pair.
func (p *Policy) Decide(email, appName string) Decision {
	if _, ok := p.publicApps[strings.ToLower(strings.TrimSpace(appName))]; ok {
		return Decision{Allowed: true, PublicApp: true, TrustedDomain: p.hasTrustedSuffix(email)}
	}

	if p.hasTrustedSuffix(email) {
		return Decision{Allowed: true, TrustedDomain: true}
	}

	return Decision{Reason: p.denialReason}
}

// DenialReason returns the fixed message used when a restricted app
// rejects an identity.
func (p *Policy) DenialReason() string {
	return p.denialReason
}

// hasTrustedSuffix reports whether email ends with "@" + trustedDomain,
// case-insensitively. Malformed emails simply fail the match.
func (p *Policy) hasTrustedSuffix(email string) bool {
	if p.trustedDomain == "" {
		return false
	}

	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+p.trustedDomain)
}
