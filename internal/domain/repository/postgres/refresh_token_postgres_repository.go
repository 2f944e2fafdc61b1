// File: internal/domain/repository/postgres/refresh_token_postgres_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// RefreshTokenRepositoryPostgres implements repository.RefreshTokenRepository.
// The refresh_tokens table has UNIQUE (user_id) and UNIQUE (token), so the
// at-most-one-live-token-per-user invariant holds even under concurrent
// issuance; Replace additionally wraps delete+insert in one transaction.
type RefreshTokenRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepositoryPostgres creates a new RefreshTokenRepositoryPostgres.
func NewRefreshTokenRepositoryPostgres(pool *pgxpool.Pool) *RefreshTokenRepositoryPostgres {
	return &RefreshTokenRepositoryPostgres{pool: pool}
}

// Replace atomically supersedes the user's refresh token with the given one.
func (r *RefreshTokenRepositoryPostgres) Replace(ctx context.Context, token *models.RefreshToken) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin refresh token transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, token.UserID); err != nil {
		return fmt.Errorf("failed to delete previous refresh token: %w", err)
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt, token.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit refresh token transaction: %w", err)
	}
	return nil
}

// FindByToken retrieves a refresh token by its opaque value.
func (r *RefreshTokenRepositoryPostgres) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`
	rt := &models.RefreshToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return rt, nil
}

// DeleteByToken removes a refresh token by value. The returned flag is the
// single-winner check for concurrent rotations: only the caller that actually
// removed the row may proceed to issue a replacement.
func (r *RefreshTokenRepositoryPostgres) DeleteByToken(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByUserID removes the user's refresh token if one exists.
func (r *RefreshTokenRepositoryPostgres) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens for user: %w", err)
	}
	return nil
}
