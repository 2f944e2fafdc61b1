// File: internal/domain/repository/postgres/user_postgres_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// UserRepositoryPostgres implements repository.UserRepository.
type UserRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewUserRepositoryPostgres creates a new UserRepositoryPostgres.
func NewUserRepositoryPostgres(pool *pgxpool.Pool) *UserRepositoryPostgres {
	return &UserRepositoryPostgres{pool: pool}
}

const userColumns = `id, email, hashed_password, full_name, is_active, is_email_verified, auth_provider, roles, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	var roles string
	var provider string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive,
		&u.IsEmailVerified, &provider, &roles, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.AuthProvider = models.AuthProvider(provider)
	u.Roles = models.ParseRoles(roles)
	return u, nil
}

// Create persists a new user row.
func (r *UserRepositoryPostgres) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, hashed_password, full_name, is_active, is_email_verified, auth_provider, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.IsActive,
		user.IsEmailVerified, string(user.AuthProvider), user.Roles.Join(),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("failed to create user: %w", domainErrors.ErrEmailExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email.
func (r *UserRepositoryPostgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by id.
func (r *UserRepositoryPostgres) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return u, nil
}

// Update persists mutable user fields and bumps updated_at.
func (r *UserRepositoryPostgres) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, hashed_password = $2, full_name = $3, is_active = $4,
		    is_email_verified = $5, auth_provider = $6, roles = $7, updated_at = $8
		WHERE id = $9
	`
	user.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.IsActive,
		user.IsEmailVerified, string(user.AuthProvider), user.Roles.Join(),
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

// HasUserWithRole reports whether any user carries the given role. The roles
// column is the comma-delimited set, so the check is a delimited-list match.
func (r *UserRepositoryPostgres) HasUserWithRole(ctx context.Context, role models.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE $1 = ANY(string_to_array(roles, ',')))`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, string(role)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role presence: %w", err)
	}
	return exists, nil
}

// ListPaged returns one page of users ordered by creation time, newest first,
// and the total user count.
func (r *UserRepositoryPostgres) ListPaged(ctx context.Context, page, size int) ([]*models.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, total, nil
}
