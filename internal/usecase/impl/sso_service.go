// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/access"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"go.uber.org/fx"
)

// ssoService implements the SSOUsecase interface. All operations are
// per-request and stateless; the policy and resolver inputs are
// read-only configuration loaded at startup.
type ssoService struct {
	identityVerifier service.IdentityVerifier
	sessionTokens    service.SessionTokenService
	policy           *access.Policy
	logger           *slog.Logger
}

// SSOServiceParams holds dependencies for ssoService, injected by Fx.
type SSOServiceParams struct {
	fx.In

	IdentityVerifier service.IdentityVerifier
	SessionTokens    service.SessionTokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewSSOService is the constructor for ssoService.
func NewSSOService(params SSOServiceParams) usecase.SSOUsecase {
	return &ssoService{
		identityVerifier: params.IdentityVerifier,
		sessionTokens:    params.SessionTokens,
		policy:           access.NewPolicy(params.Config.SSO.TrustedEmailDomain, params.Config.SSO.PublicApps),
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ssoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ExchangeGoogleToken turns a verified Google identity into a session
// credential. The issuer is never reached for a denied decision.
func (srv *ssoService) ExchangeGoogleToken(ctx context.Context, input *usecase.ExchangeInput) (*usecase.ExchangeOutput, error) {
	claim, err := srv.identityVerifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	decision := srv.policy.Decide(claim.Email, input.AppName)
	if !decision.Allowed {
		srv.log(ctx).Info("exchange denied by policy",
			slog.String("email", claim.Email),
			slog.String("app", input.AppName))

		return nil, domainerrors.ErrAccessDenied.WithDetails(decision.Reason)
	}

	token, err := srv.sessionTokens.Issue(claim)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("session issued",
		slog.String("email", claim.Email),
		slog.String("app", input.AppName),
		slog.Bool("publicApp", decision.PublicApp))

	return &usecase.ExchangeOutput{Token: token, User: claim, Decision: decision}, nil
}

// VerifyToken re-validates a session credential for the current app.
// The app may differ from the one that issued the credential, so policy
// runs again on every call.
func (srv *ssoService) VerifyToken(ctx context.Context, input *usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	if input.Token == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := srv.sessionTokens.Validate(input.Token)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage(err.Error())
	}

	decision := srv.policy.Decide(claims.Email, input.AppName)
	if !decision.Allowed {
		return nil, domainerrors.ErrAccessDenied.WithDetails(decision.Reason)
	}

	return &usecase.VerifyOutput{User: claims.Identity(), Decision: decision}, nil
}

// CheckAuth never fails: a logged-out visitor is an expected condition,
// not a fault.
func (srv *ssoService) CheckAuth(ctx context.Context, token, appName string) *usecase.CheckAuthOutput {
	output, err := srv.VerifyToken(ctx, &usecase.VerifyInput{Token: token, AppName: appName})
	if err != nil {
		return &usecase.CheckAuthOutput{LoggedIn: false}
	}

	return &usecase.CheckAuthOutput{LoggedIn: true, User: output.User}
}
