package service

import (
	"context"

	"passport/internal/domain/entity"
)

// SSOVerifier is the downstream-side view of the central auth server:
// it forwards a session credential for verification against the current
// app and returns the identity it carries. Implementations must fail
// with UpstreamUnavailable when the central server cannot be reached
// within the call timeout.
type SSOVerifier interface {
	Verify(ctx context.Context, token, appName string) (*entity.IdentityClaim, error)
}
