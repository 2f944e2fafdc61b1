// File: internal/domain/models/refresh_token.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the single durable refresh credential of a user. At most
// one row exists per user; issuing a new one replaces the old.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at the given time.
// A token whose expiry equals now is already expired.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
