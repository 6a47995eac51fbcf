// Package service declares the domain service contracts the use cases
// depend on. Concrete implementations live under internal/infra.
package service

import (
	"context"

	"passport/internal/domain/entity"
)

// IdentityVerifier validates an externally-issued identity token against
// the identity provider's signing keys and yields the verified claim.
// Verification is stateless; a failure is terminal for the request.
type IdentityVerifier interface {
	// VerifyIDToken checks signature, issuer, audience and expiry of the
	// raw token and returns the identity it attests.
	VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityClaim, error)

	// Provider returns the identity provider this verifier trusts.
	Provider() entity.ProviderType
}
