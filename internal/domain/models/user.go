// File: internal/domain/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "LOCAL"
	AuthProviderGoogle AuthProvider = "GOOGLE"
)

// User is the identity record. PasswordHash is nil for federated-only
// accounts. Roles always contains at least ROLE_USER for persisted users.
type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    *string
	FullName        string
	IsActive        bool
	IsEmailVerified bool
	AuthProvider    AuthProvider
	Roles           Roles
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
