// File: internal/service/token_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/domain/repository"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
)

// TokenService owns the refresh-token lifecycle: issuance, rotation,
// revocation. Access tokens are delegated to the JWT service; refresh tokens
// are opaque random values tracked in the store.
type TokenService struct {
	refreshRepo     repository.RefreshTokenRepository
	userRepo        repository.UserRepository
	jwtService      *security.JWTService
	refreshTokenTTL time.Duration
	logger          *zap.Logger
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	refreshRepo repository.RefreshTokenRepository,
	userRepo repository.UserRepository,
	jwtService *security.JWTService,
	refreshTokenTTL time.Duration,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		refreshRepo:     refreshRepo,
		userRepo:        userRepo,
		jwtService:      jwtService,
		refreshTokenTTL: refreshTokenTTL,
		logger:          logger,
	}
}

// IssueFor supersedes any refresh token the user holds with a fresh one.
func (s *TokenService) IssueFor(ctx context.Context, userID uuid.UUID) (*models.RefreshToken, error) {
	now := time.Now().UTC()
	token := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(s.refreshTokenTTL),
		CreatedAt: now,
	}
	if err := s.refreshRepo.Replace(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return token, nil
}

// IssuePair builds the access/refresh token pair for an authenticated user.
func (s *TokenService) IssuePair(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.jwtService.CreateAccessToken(user.Email, user.ID.String(), user.Roles.OrDefault())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtService.AccessTokenTTL().Seconds()),
		UserID:       user.ID.String(),
	}, nil
}

// Rotate exchanges a refresh token for a fresh pair. A refresh token is
// single-use: the conditional delete below decides the winner when two
// rotations race on the same value, and the loser fails with ErrTokenNotFound.
func (s *TokenService) Rotate(ctx context.Context, oldToken string) (*models.AuthResponse, error) {
	stored, err := s.refreshRepo.FindByToken(ctx, oldToken)
	if err != nil {
		return nil, err
	}

	if stored.IsExpired(time.Now()) {
		if _, err := s.refreshRepo.DeleteByToken(ctx, oldToken); err != nil {
			s.logger.Error("Failed to delete expired refresh token", zap.Error(err))
		}
		return nil, domainErrors.ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainErrors.ErrUserInactive
	}

	deleted, err := s.refreshRepo.DeleteByToken(ctx, oldToken)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// A concurrent rotation consumed the token first.
		return nil, domainErrors.ErrTokenNotFound
	}

	return s.IssuePair(ctx, user)
}

// Revoke deletes the user's refresh token unconditionally (used on ban).
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID) error {
	return s.refreshRepo.DeleteByUserID(ctx, userID)
}

// Consume deletes a refresh token by value. Absence is not an error, so
// logout is idempotent.
func (s *TokenService) Consume(ctx context.Context, token string) error {
	if _, err := s.refreshRepo.DeleteByToken(ctx, token); err != nil {
		return err
	}
	return nil
}
