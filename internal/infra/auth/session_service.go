// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// sessionTokenService signs and validates the gateway's session
// credential using HS256 and the process-wide session secret.
type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session signing secret must be provided")
	}

	ttl := 30 * 24 * time.Hour
	if cfg.SSO != nil && cfg.SSO.SessionTTL > 0 {
		ttl = cfg.SSO.SessionTTL
	}

	return &sessionTokenService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    ttl,
	}, nil
}

// Issue signs a new session credential embedding the identity claim
// with the configured lifetime.
func (s *sessionTokenService) Issue(claim *entity.IdentityClaim) (string, error) {
	now := time.Now()
	claims := &service.SessionClaims{
		Email:      claim.Email,
		Name:       claim.Name,
		Picture:    claim.Picture,
		GivenName:  claim.GivenName,
		FamilyName: claim.FamilyName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session credential")
	}

	return signed, nil
}

// Validate parses and verifies a session credential. Expired or
// tampered tokens carry no authority and fail here.
func (s *sessionTokenService) Validate(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate session credential")
	}
	if !token.Valid {
		return nil, errors.New("session credential is not valid")
	}

	return claims, nil
}

// TTL returns the configured credential lifetime.
func (s *sessionTokenService) TTL() time.Duration {
	return s.ttl
}
