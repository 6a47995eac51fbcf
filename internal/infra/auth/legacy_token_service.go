package auth

import (
	"time"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// legacyTokenTTL matches the lifetime the pre-SSO scheme always used.
const legacyTokenTTL = 7 * 24 * time.Hour

// legacyTokenService implements the pre-SSO local credential scheme.
// It signs with its own secret, so session credentials and legacy
// credentials never validate against each other's keyspace.
type legacyTokenService struct {
	secret []byte
}

// NewLegacyTokenService is the constructor for legacyTokenService.
func NewLegacyTokenService(cfg *config.Config) (service.LegacyTokenService, error) {
	if cfg.SecretKey.Legacy == "" {
		return nil, errors.New("legacy signing secret must be provided")
	}

	return &legacyTokenService{secret: []byte(cfg.SecretKey.Legacy)}, nil
}

// Issue signs a legacy credential whose subject is the opaque local
// user id.
func (s *legacyTokenService) Issue(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(legacyTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign legacy credential")
	}

	return signed, nil
}

// Validate parses and verifies a legacy credential string.
func (s *legacyTokenService) Validate(tokenString string) (*service.LegacyClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate legacy credential")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("legacy credential is not valid")
	}

	subject, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.Wrap(err, "legacy credential subject is not a local user id")
	}

	role, _ := mapClaims["role"].(string)

	return &service.LegacyClaims{UserID: userID, Role: role}, nil
}
