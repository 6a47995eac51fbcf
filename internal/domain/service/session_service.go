package service

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the custom claims embedded in the gateway's own
// session credential. They mirror the verified identity so downstream
// validation never needs the identity provider again.
type SessionClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// Identity rebuilds the identity claim carried by the credential.
func (c *SessionClaims) Identity() *entity.IdentityClaim {
	return &entity.IdentityClaim{
		Email:      c.Email,
		Name:       c.Name,
		Picture:    c.Picture,
		GivenName:  c.GivenName,
		FamilyName: c.FamilyName,
	}
}

// SessionTokenService mints and validates the gateway's signed session
// credential. Validation is purely a function of the token and the
// signing secret; no server-side session state exists, so revocation
// means waiting out the expiry or rotating the secret.
type SessionTokenService interface {
	// Issue signs a new session credential embedding the identity claim.
	Issue(claim *entity.IdentityClaim) (string, error)

	// Validate parses and verifies a session credential string.
	Validate(tokenString string) (*SessionClaims, error)

	// TTL returns the configured credential lifetime.
	TTL() time.Duration
}

// LegacyClaims are the claims of the pre-SSO local credential scheme.
// The subject is the opaque local user id, not an email.
type LegacyClaims struct {
	UserID uuid.UUID
	Role   string
	jwt.RegisteredClaims
}

// LegacyTokenService signs and validates legacy local credentials. It
// uses a different secret than the SSO scheme, so tokens from one
// keyspace never validate in the other.
type LegacyTokenService interface {
	// Issue signs a legacy credential for a local user.
	Issue(userID uuid.UUID, role string) (string, error)

	// Validate parses and verifies a legacy credential string.
	Validate(tokenString string) (*LegacyClaims, error)
}
