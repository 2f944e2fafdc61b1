// File: internal/domain/repository/user_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// UserRepository is the durable store of identity records.
type UserRepository interface {
	// Create persists a new user. Returns domain errors.ErrEmailExists when
	// the email is already taken.
	Create(ctx context.Context, user *models.User) error
	// FindByEmail returns errors.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns errors.ErrUserNotFound when the id is unknown.
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// Update persists mutable fields (password hash, name, flags, provider,
	// roles) and bumps updated_at.
	Update(ctx context.Context, user *models.User) error
	// HasUserWithRole reports whether any user carries the given role.
	HasUserWithRole(ctx context.Context, role models.Role) (bool, error)
	// ListPaged returns one page of users ordered by creation time, plus the
	// total user count.
	ListPaged(ctx context.Context, page, size int) ([]*models.User, int64, error)
}
