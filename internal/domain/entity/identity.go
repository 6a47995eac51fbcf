// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// ProviderType identifies the identity provider that attested a claim.
type ProviderType string

const (
	// ProviderTypeGoogle marks identities verified through Google Sign-In.
	ProviderTypeGoogle ProviderType = "google"

	// ProviderTypeLocal marks identities verified through the legacy
	// local credential scheme.
	ProviderTypeLocal ProviderType = "local"
)

// IdentityClaim is the verified identity produced by a successful
// identity-provider verification. It is immutable and never persisted by
// the gateway itself; downstream applications may key their own user
// records off the email.
type IdentityClaim struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
}
