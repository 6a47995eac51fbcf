package impl_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/infra/auth"
	"passport/internal/usecase"
	"passport/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdentityVerifier struct {
	claim *entity.IdentityClaim
	err   error
}

func (s *stubIdentityVerifier) VerifyIDToken(context.Context, string) (*entity.IdentityClaim, error) {
	return s.claim, s.err
}

func (s *stubIdentityVerifier) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

func newSSOConfig() *config.Config {
	cfg := &config.Config{}
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

func newSSOService(t *testing.T, verifier *stubIdentityVerifier) usecase.SSOUsecase {
	t.Helper()

	cfg := newSSOConfig()
	sessionTokens, err := auth.NewSessionTokenService(cfg)
	require.NoError(t, err)

	return impl.NewSSOService(impl.SSOServiceParams{
		IdentityVerifier: verifier,
		SessionTokens:    sessionTokens,
		Config:           cfg,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestExchangeGoogleToken_TrustedDomain(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{
		claim: &entity.IdentityClaim{Email: "user@vnrvjiet.in", Name: "Org User"},
	})

	output, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "faculty-portal",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
	assert.Equal(t, "user@vnrvjiet.in", output.User.Email)
	assert.True(t, output.Decision.Allowed)
	assert.True(t, output.Decision.TrustedDomain)
}

func TestExchangeGoogleToken_PolicyDenied(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{
		claim: &entity.IdentityClaim{Email: "user@gmail.com"},
	})

	output, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "faculty-portal",
	})

	require.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "Only @vnrvjiet.in")
}

func TestExchangeGoogleToken_VerifierErrorPropagates(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{err: domainerrors.ErrUpstreamUnavailable})

	_, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "wall",
	})

	require.ErrorIs(t, err, domainerrors.ErrUpstreamUnavailable)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{
		claim: &entity.IdentityClaim{Email: "user@vnrvjiet.in", Name: "Org User"},
	})

	minted, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "wall",
	})
	require.NoError(t, err)

	output, err := uc.VerifyToken(context.Background(), &usecase.VerifyInput{
		Token:   minted.Token,
		AppName: "faculty-portal",
	})

	require.NoError(t, err)
	assert.Equal(t, "user@vnrvjiet.in", output.User.Email)
}

// Policy re-runs per request: a credential issued via a public app does
// not authorize a restricted one.
func TestVerifyToken_DeniedForDifferentApp(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{
		claim: &entity.IdentityClaim{Email: "user@gmail.com"},
	})

	minted, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "wall",
	})
	require.NoError(t, err)

	_, err = uc.VerifyToken(context.Background(), &usecase.VerifyInput{
		Token:   minted.Token,
		AppName: "faculty-portal",
	})

	require.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestVerifyToken_EmptyToken(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{})

	_, err := uc.VerifyToken(context.Background(), &usecase.VerifyInput{AppName: "wall"})

	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestVerifyToken_Garbage(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{})

	_, err := uc.VerifyToken(context.Background(), &usecase.VerifyInput{
		Token:   "not-a-jwt",
		AppName: "wall",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestCheckAuth_SwallowsFailures(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{})

	for _, token := range []string{"", "not-a-jwt"} {
		output := uc.CheckAuth(context.Background(), token, "wall")

		assert.False(t, output.LoggedIn)
		assert.Nil(t, output.User)
	}
}

func TestCheckAuth_Positive(t *testing.T) {
	uc := newSSOService(t, &stubIdentityVerifier{
		claim: &entity.IdentityClaim{Email: "user@vnrvjiet.in"},
	})

	minted, err := uc.ExchangeGoogleToken(context.Background(), &usecase.ExchangeInput{
		IDToken: "raw",
		AppName: "wall",
	})
	require.NoError(t, err)

	output := uc.CheckAuth(context.Background(), minted.Token, "wall")

	assert.True(t, output.LoggedIn)
	assert.Equal(t, "user@vnrvjiet.in", output.User.Email)
}
