// File: internal/domain/repository/refresh_token_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// RefreshTokenRepository is the durable store of refresh tokens. The store
// enforces the at-most-one-live-token-per-user invariant: Replace runs a
// transactional delete-before-insert and the schema carries a unique
// constraint on user_id.
type RefreshTokenRepository interface {
	// Replace atomically deletes any refresh token owned by token.UserID and
	// inserts the given one.
	Replace(ctx context.Context, token *models.RefreshToken) error
	// FindByToken returns errors.ErrTokenNotFound when the opaque value is
	// unknown.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	// DeleteByToken removes the row with the given opaque value and reports
	// whether a row was actually removed. Concurrent rotations of the same
	// token use this as the single-winner check.
	DeleteByToken(ctx context.Context, token string) (bool, error)
	// DeleteByUserID removes the user's refresh token if one exists.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetTokenRepository is the durable store of one-time password
// reset tokens. Several tokens may be outstanding per user.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	// FindByToken returns errors.ErrTokenNotFound when the opaque value is
	// unknown.
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// DeleteByToken removes the row with the given opaque value and reports
	// whether a row was removed.
	DeleteByToken(ctx context.Context, token string) (bool, error)
}
