// File: internal/domain/repository/postgres/password_reset_token_postgres_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// PasswordResetTokenRepositoryPostgres implements repository.PasswordResetTokenRepository.
type PasswordResetTokenRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewPasswordResetTokenRepositoryPostgres creates a new PasswordResetTokenRepositoryPostgres.
func NewPasswordResetTokenRepositoryPostgres(pool *pgxpool.Pool) *PasswordResetTokenRepositoryPostgres {
	return &PasswordResetTokenRepositoryPostgres{pool: pool}
}

// Create persists a new password reset token.
func (r *PasswordResetTokenRepositoryPostgres) Create(ctx context.Context, token *models.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	return nil
}

// FindByToken retrieves a password reset token by its opaque value.
func (r *PasswordResetTokenRepositoryPostgres) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`
	t := &models.PasswordResetToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find password reset token: %w", err)
	}
	return t, nil
}

// DeleteByToken removes a password reset token by value and reports whether a
// row was removed.
func (r *PasswordResetTokenRepositoryPostgres) DeleteByToken(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete password reset token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
