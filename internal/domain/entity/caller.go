package entity

// AuthMethod tags which verification path authenticated a caller.
type AuthMethod string

const (
	// AuthMethodSSO means the centralized session credential validated.
	AuthMethodSSO AuthMethod = "sso"

	// AuthMethodLocal means the legacy locally-issued credential validated.
	AuthMethodLocal AuthMethod = "local"
)

// CallerIdentity is the normalized shape both hybrid verification paths
// resolve to. CallerID is the directory's internal id when the caller is
// known locally, otherwise the verified email.
type CallerIdentity struct {
	CallerID   string     `json:"callerId"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role,omitempty"`
	AuthMethod AuthMethod `json:"authMethod"`
}
