// Package google verifies Google-issued identity tokens against
// Google's published signing keys.
package google

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
)

const (
	issuerURL = "https://accounts.google.com"

	// providerTimeout bounds every outbound call to Google (discovery,
	// key fetch, verification) so an unreachable provider fails fast.
	providerTimeout = 8 * time.Second
)

// idTokenClaims is the subset of Google ID token claims the gateway
// consumes. Issuer, audience, expiry and signature are enforced by the
// OIDC verifier before these are read.
type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// identityVerifier implements service.IdentityVerifier for Google.
// Provider discovery and the JWKS cache are initialized lazily on the
// first verification and reused afterwards.
type identityVerifier struct {
	clientID string
	logger   *slog.Logger

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

// NewIdentityVerifier is the constructor for identityVerifier.
func NewIdentityVerifier(cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth client id must be provided")
	}

	return &identityVerifier{
		clientID: cfg.GoogleOAuth.ClientID,
		logger:   logger,
	}, nil
}

// VerifyIDToken validates the raw token's signature, issuer, audience
// and expiry, then applies the gateway's own claim checks.
func (v *identityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityClaim, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	tokenVerifier, err := v.tokenVerifier(ctx)
	if err != nil {
		v.logger.Error("Google OIDC discovery failed", slog.Any("error", err))

		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}

	token, err := tokenVerifier.Verify(ctx, idToken)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("identity provider call timed out")
		}

		return nil, domainerrors.ErrInvalidCredential.WrapMessage(err.Error())
	}

	var claims idTokenClaims
	if err := token.Claims(&claims); err != nil {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("malformed token payload")
	}

	if err := validateClaims(&claims); err != nil {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage(err.Error())
	}

	v.logger.Info("Google ID token verified", slog.String("email", claims.Email))

	return &entity.IdentityClaim{
		Email:      claims.Email,
		Name:       claims.Name,
		Picture:    claims.Picture,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}

// Provider returns the identity provider this verifier trusts.
func (v *identityVerifier) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// tokenVerifier lazily discovers the provider and caches the resulting
// verifier, which holds the remote key set with its own refresh logic.
func (v *identityVerifier) tokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.verifier != nil {
		return v.verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover google oidc provider")
	}

	v.verifier = provider.Verifier(&oidc.Config{ClientID: v.clientID})

	return v.verifier, nil
}

// validateClaims applies the gateway's checks on top of OIDC
// verification. Pure: no I/O.
func validateClaims(claims *idTokenClaims) error {
	if claims.Email == "" {
		return errors.New("token carries no email")
	}
	if !claims.EmailVerified {
		return errors.New("email not verified by provider")
	}

	return nil
}
