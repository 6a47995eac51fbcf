package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// Outcome tags which verification path settled a hybrid authentication
// attempt.
type Outcome string

const (
	OutcomeSSO        Outcome = "sso_valid"
	OutcomeLocal      Outcome = "local_valid"
	OutcomeBothFailed Outcome = "both_failed"
)

// HybridAuthInput carries every credential candidate a downstream
// request may present. Extraction order is the caller's concern; the
// reconciler tries SSO first, then the legacy scheme.
type HybridAuthInput struct {
	SessionToken string // SSO credential cookie value.
	LegacyToken  string // Legacy credential cookie value.
	BearerToken  string // Authorization bearer header value.
	AppName      string
}

// HybridAuthOutput is the normalized result of a successful attempt.
type HybridAuthOutput struct {
	Caller  *entity.CallerIdentity
	Outcome Outcome
}

// LoginInput is the legacy local login request.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the minted legacy credential and the directory
// record it belongs to.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// HybridUsecase lets a downstream app accept either the SSO credential
// or the pre-existing local scheme during the migration window.
type HybridUsecase interface {
	// Authenticate runs SSO verification first and falls back to the
	// legacy scheme. Exactly one path succeeds per request; exhaustion
	// of both surfaces Unauthenticated.
	Authenticate(ctx context.Context, input *HybridAuthInput) (*HybridAuthOutput, error)

	// Login performs the legacy email/password login and mints a legacy
	// credential.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
