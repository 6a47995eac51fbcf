package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPolicy() *Policy {
	return NewPolicy("vnrvjiet.in", []string{"wall", "passport"})
}

func TestPolicy_TrustedDomainAllowedOnAnyApp(t *testing.T) {
	policy := newTestPolicy()

	for _, app := range []string{"faculty-portal", "wall", "", "unknown-app"} {
		decision := policy.Decide("user@vnrvjiet.in", app)
		assert.True(t, decision.Allowed, "app %q", app)
		assert.True(t, decision.TrustedDomain, "app %q", app)
	}
}

func TestPolicy_TrustedSuffixIsCaseInsensitive(t *testing.T) {
	policy := NewPolicy("org.edu", nil)

	decision := policy.Decide("USER@Org.Edu", "restricted-app")
	assert.True(t, decision.Allowed)
	assert.True(t, decision.TrustedDomain)
}

func TestPolicy_PublicAppAllowsAnyEmail(t *testing.T) {
	policy := newTestPolicy()

	for _, email := range []string{"someone@gmail.com", "", "not-an-email"} {
		decision := policy.Decide(email, "wall")
		assert.True(t, decision.Allowed, "email %q", email)
		assert.True(t, decision.PublicApp, "email %q", email)
	}
}

func TestPolicy_DeniedWithReason(t *testing.T) {
	policy := newTestPolicy()

	decision := policy.Decide("user@gmail.com", "faculty-portal")
	assert.False(t, decision.Allowed)
	assert.False(t, decision.PublicApp)
	assert.False(t, decision.TrustedDomain)
	assert.NotEmpty(t, decision.Reason)
	assert.Contains(t, decision.Reason, "@vnrvjiet.in")
}

func TestPolicy_UndefinedAppFailsRestrictedCheck(t *testing.T) {
	policy := newTestPolicy()

	decision := policy.Decide("user@gmail.com", "")
	assert.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Reason)
}

func TestPolicy_TotalOverMalformedInputs(t *testing.T) {
	policy := newTestPolicy()

	// Every pair resolves to a decision, no panics.
	for _, email := range []string{"", "@", "a@b@c", "user@vnrvjiet.in"} {
		for _, app := range []string{"", "WALL", "faculty-portal"} {
			_ = policy.Decide(email, app)
		}
	}
}

func TestPolicy_PublicAppListCaseInsensitive(t *testing.T) {
	policy := newTestPolicy()

	decision := policy.Decide("someone@gmail.com", "Wall")
	assert.True(t, decision.Allowed)
	assert.True(t, decision.PublicApp)
}

func TestPolicy_TrustedDomainConfigAcceptsLeadingAt(t *testing.T) {
	policy := NewPolicy("@vnrvjiet.in", nil)

	decision := policy.Decide("user@vnrvjiet.in", "faculty-portal")
	assert.True(t, decision.Allowed)
}
