package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/config"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	"passport/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// fakeIdentityVerifier resolves known raw tokens to fixed claims, so
// end-to-end tests never touch the real identity provider.
type fakeIdentityVerifier struct {
	claims map[string]*entity.IdentityClaim
}

func (f *fakeIdentityVerifier) VerifyIDToken(_ context.Context, idToken string) (*entity.IdentityClaim, error) {
	claim, ok := f.claims[idToken]
	if !ok {
		return nil, domainerrors.ErrInvalidCredential
	}

	return claim, nil
}

func (f *fakeIdentityVerifier) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// fakeSSOVerifier stands in for the central auth server on the hybrid
// path.
type fakeSSOVerifier struct {
	claims map[string]*entity.IdentityClaim
}

func (f *fakeSSOVerifier) Verify(_ context.Context, token, _ string) (*entity.IdentityClaim, error) {
	claim, ok := f.claims[token]
	if !ok {
		return nil, domainerrors.ErrInvalidCredential
	}

	return claim, nil
}

// memoryUserRepo is an in-memory user directory.
type memoryUserRepo struct {
	users []*entity.User
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// harness assembles a fully routed echo server on fakes plus the real
// token services, policy and handlers.
type harness struct {
	e            *echo.Echo
	cfg          *config.Config
	legacyTokens service.LegacyTokenService
	hasher       service.PasswordHasher
	repo         *memoryUserRepo
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "passport"
	cfg.SecretKey.Session = "session-secret-for-tests"
	cfg.SecretKey.Legacy = "legacy-secret-for-tests"
	cfg.SSO = &config.SSOConfig{
		RootDomain:         "vnrvjiet.in",
		TrustedEmailDomain: "vnrvjiet.in",
		PublicApps:         []string{"wall", "passport"},
		SessionTTL:         720 * time.Hour,
	}

	return cfg
}

func newHarness(t *testing.T, identities, ssoSessions map[string]*entity.IdentityClaim, users []*entity.User) *harness {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessionTokens, err := auth.NewSessionTokenService(cfg)
	require.NoError(t, err)
	legacyTokens, err := auth.NewLegacyTokenService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher()
	repo := &memoryUserRepo{users: users}

	ssoUC := impl.NewSSOService(impl.SSOServiceParams{
		IdentityVerifier: &fakeIdentityVerifier{claims: identities},
		SessionTokens:    sessionTokens,
		Config:           cfg,
		Logger:           logger,
	})
	hybridUC := impl.NewHybridService(impl.HybridServiceParams{
		SSOVerifier:  &fakeSSOVerifier{claims: ssoSessions},
		LegacyTokens: legacyTokens,
		UserRepo:     repo,
		Hasher:       hasher,
		Logger:       logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	r := router.NewRouter(router.RouterParams{
		AuthHandler:          handler.NewAuthHandler(ssoUC, cfg, logger),
		HybridHandler:        handler.NewHybridHandler(hybridUC, logger),
		HybridAuthMiddleware: middleware.NewHybridAuthMiddleware(hybridUC, cfg),
		RequestIDMiddleware:  middleware.NewRequestIDMiddleware(logger),
	})
	r.RegisterRoutes(e)

	return &harness{
		e:            e,
		cfg:          cfg,
		legacyTokens: legacyTokens,
		hasher:       hasher,
		repo:         repo,
	}
}

// do performs a request against the in-process server.
func (h *harness) do(method, target, body string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if decorate != nil {
		decorate(req)
	}

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	return rec
}
