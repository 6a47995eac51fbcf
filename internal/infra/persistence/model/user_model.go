// Package model contains the GORM persistence models. They are mapped
// to and from pure domain entities at the repository boundary.
package model

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel is the GORM model for the local user directory.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'student'"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the GORM table name.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *UserModel) ToDomain() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
