package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a record in the local user directory. It predates the SSO
// rollout: the legacy credential scheme keys sessions by ID, while the
// SSO path looks users up by email to translate a verified identity
// into an application principal.
type User struct {
	ID           uuid.UUID // Opaque local identifier, the legacy token subject.
	Email        string    // Primary email, unique within the directory.
	Name         string    // Display name.
	Role         string    // Application role, e.g. "student", "faculty", "admin".
	PasswordHash string    // bcrypt hash for the legacy local login. Empty for SSO-only users.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
