// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when the directory
// holds no record for the given key.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the local user directory consumed by the hybrid
// verification path. The SSO path looks callers up by email to obtain
// an internal principal; the legacy path looks them up by the opaque
// local id carried in the legacy token subject.
type UserRepository interface {
	// FindByID retrieves a user by their opaque local identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
