package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("legacy-password-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "legacy-password-123", hash)

	assert.True(t, hasher.Check("legacy-password-123", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_CheckAgainstGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher()

	assert.False(t, hasher.Check("anything", "not-a-bcrypt-hash"))
}
