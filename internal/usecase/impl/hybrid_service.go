package impl

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// hybridService reconciles the SSO credential with the legacy local
// scheme during the migration window. Per request it walks the state
// machine NoToken -> TokenPresent -> {Valid, Invalid}; the fallback
// from SSO to local is not an error, only exhaustion of both paths is.
type hybridService struct {
	ssoVerifier  service.SSOVerifier
	legacyTokens service.LegacyTokenService
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	logger       *slog.Logger
}

// HybridServiceParams holds dependencies for hybridService, injected by Fx.
type HybridServiceParams struct {
	fx.In

	SSOVerifier  service.SSOVerifier
	LegacyTokens service.LegacyTokenService
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	Logger       *slog.Logger
}

// NewHybridService is the constructor for hybridService.
func NewHybridService(params HybridServiceParams) usecase.HybridUsecase {
	return &hybridService{
		ssoVerifier:  params.SSOVerifier,
		legacyTokens: params.LegacyTokens,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		logger:       params.Logger,
	}
}

func (srv *hybridService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate tries SSO verification first; on any failure there
// (including an unreachable central server) it falls through to the
// legacy scheme. Exactly one path succeeds per request.
func (srv *hybridService) Authenticate(ctx context.Context, input *usecase.HybridAuthInput) (*usecase.HybridAuthOutput, error) {
	if input.SessionToken == "" && input.LegacyToken == "" && input.BearerToken == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	if caller, ok := srv.trySSO(ctx, input); ok {
		return &usecase.HybridAuthOutput{Caller: caller, Outcome: usecase.OutcomeSSO}, nil
	}

	if caller, ok := srv.tryLocal(ctx, input); ok {
		return &usecase.HybridAuthOutput{Caller: caller, Outcome: usecase.OutcomeLocal}, nil
	}

	return nil, domainerrors.ErrUnauthenticated.WrapMessage("both sso and legacy verification failed")
}

// trySSO runs the centralized verification path. The session cookie is
// preferred; the bearer header is the fallback candidate.
func (srv *hybridService) trySSO(ctx context.Context, input *usecase.HybridAuthInput) (*entity.CallerIdentity, bool) {
	token := input.SessionToken
	if token == "" {
		token = input.BearerToken
	}
	if token == "" {
		return nil, false
	}

	claim, err := srv.ssoVerifier.Verify(ctx, token, input.AppName)
	if err != nil {
		srv.log(ctx).Debug("sso verification failed, falling back to legacy",
			slog.Any("error", err))

		return nil, false
	}

	return srv.toPrincipal(ctx, claim), true
}

// tryLocal validates the legacy credential against its own keyspace and
// resolves the subject in the local registry.
func (srv *hybridService) tryLocal(ctx context.Context, input *usecase.HybridAuthInput) (*entity.CallerIdentity, bool) {
	token := input.LegacyToken
	if token == "" {
		token = input.BearerToken
	}
	if token == "" {
		return nil, false
	}

	claims, err := srv.legacyTokens.Validate(token)
	if err != nil {
		return nil, false
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		srv.log(ctx).Debug("legacy subject not in registry", slog.Any("error", err))

		return nil, false
	}

	return &entity.CallerIdentity{
		CallerID:   user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		AuthMethod: entity.AuthMethodLocal,
	}, true
}

// toPrincipal translates a verified SSO identity into an application
// principal via the directory. A directory miss is tolerated during
// migration: the caller stays authenticated, keyed by email.
func (srv *hybridService) toPrincipal(ctx context.Context, claim *entity.IdentityClaim) *entity.CallerIdentity {
	user, err := srv.userRepo.FindByEmail(ctx, claim.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("directory lookup failed", slog.Any("error", err))
		}

		return &entity.CallerIdentity{
			CallerID:   claim.Email,
			Email:      claim.Email,
			AuthMethod: entity.AuthMethodSSO,
		}
	}

	return &entity.CallerIdentity{
		CallerID:   user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		AuthMethod: entity.AuthMethodSSO,
	}
}

// Login performs the legacy email/password login.
func (srv *hybridService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidLoginCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidLoginCredentials
	}

	token, err := srv.legacyTokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("legacy login succeeded", slog.String("email", user.Email))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
