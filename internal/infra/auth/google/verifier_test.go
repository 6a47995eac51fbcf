package google

import (
	"log/slog"
	"testing"

	"passport/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentityVerifier_RequiresClientID(t *testing.T) {
	cfg := &config.Config{}

	verifier, err := NewIdentityVerifier(cfg, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, verifier)
}

func TestNewIdentityVerifier_Provider(t *testing.T) {
	cfg := &config.Config{GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "test_client_id"}}

	verifier, err := NewIdentityVerifier(cfg, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "google", string(verifier.Provider()))
}

func TestValidateClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  idTokenClaims
		wantErr bool
	}{
		{
			name:   "verified email passes",
			claims: idTokenClaims{Email: "user@vnrvjiet.in", EmailVerified: true},
		},
		{
			name:    "missing email fails",
			claims:  idTokenClaims{EmailVerified: true},
			wantErr: true,
		},
		{
			name:    "unverified email fails",
			claims:  idTokenClaims{Email: "user@vnrvjiet.in"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateClaims(&tt.claims)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
