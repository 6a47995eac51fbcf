package auth

import (
	"golang.org/x/crypto/bcrypt"

	"passport/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher
// interface using bcrypt, serving the legacy local login.
type bcryptHasher struct{}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
