// File: internal/domain/models/password_reset_token.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a one-time credential authorizing a password change.
// Unlike refresh tokens, several may be outstanding for the same user; each is
// deleted on consumption.
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at the given time.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
