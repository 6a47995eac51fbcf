// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/access"
	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// ExchangeInput carries the identity-provider token posted by the
// browser plus the resolved application name.
type ExchangeInput struct {
	IDToken string
	AppName string
}

// VerifyInput carries a session credential to re-validate for the
// current application.
type VerifyInput struct {
	Token   string
	AppName string
}

// --- Output DTOs ---

// ExchangeOutput returns the minted session credential and the verified
// identity it embeds.
type ExchangeOutput struct {
	Token    string
	User     *entity.IdentityClaim
	Decision access.Decision
}

// VerifyOutput returns the identity carried by a valid credential.
type VerifyOutput struct {
	User     *entity.IdentityClaim
	Decision access.Decision
}

// CheckAuthOutput is the always-successful answer to "is this visitor
// logged in". A missing or invalid credential is a normal negative
// result, never an error.
type CheckAuthOutput struct {
	LoggedIn bool
	User     *entity.IdentityClaim
}

// SSOUsecase is the gateway's core protocol: exchange a verified
// identity for a session credential, and re-validate that credential
// per request against the current application's policy.
type SSOUsecase interface {
	// ExchangeGoogleToken verifies the identity token, applies access
	// policy for the app, and mints a session credential.
	ExchangeGoogleToken(ctx context.Context, input *ExchangeInput) (*ExchangeOutput, error)

	// VerifyToken validates a session credential and re-runs policy for
	// the current app. Fails with Unauthenticated, InvalidCredential or
	// AccessDenied.
	VerifyToken(ctx context.Context, input *VerifyInput) (*VerifyOutput, error)

	// CheckAuth answers the logged-in question, swallowing every
	// verification failure into a negative result.
	CheckAuth(ctx context.Context, token, appName string) *CheckAuthOutput
}
