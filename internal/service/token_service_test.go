// File: internal/service/token_service_test.go
package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
)

func newTestJWTService(t *testing.T) *security.JWTService {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("token-service-test-secret-key-material"))
	svc, err := security.NewJWTService(secret, time.Hour, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func newTestTokenService(refreshRepo *mockRefreshTokenRepository, userRepo *mockUserRepository, jwtSvc *security.JWTService) *TokenService {
	return NewTokenService(refreshRepo, userRepo, jwtSvc, 7*24*time.Hour, zap.NewNop())
}

func activeUser() *models.User {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	return &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: &hash,
		FullName:     "Test User",
		IsActive:     true,
		AuthProvider: models.AuthProviderLocal,
		Roles:        models.Roles{models.RoleUser},
	}
}

func TestTokenService_IssueFor_ReplacesExisting(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	userID := uuid.New()
	refreshRepo.On("Replace", mock.Anything, mock.MatchedBy(func(tok *models.RefreshToken) bool {
		return tok.UserID == userID && tok.Token != "" && tok.ExpiresAt.After(time.Now())
	})).Return(nil)

	token, err := svc.IssueFor(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, token.UserID)
	assert.NotEmpty(t, token.Token)
	refreshRepo.AssertExpectations(t)
}

func TestTokenService_Rotate_Success(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	jwtSvc := newTestJWTService(t)
	svc := newTestTokenService(refreshRepo, userRepo, jwtSvc)

	user := activeUser()
	stored := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	refreshRepo.On("FindByToken", mock.Anything, stored.Token).Return(stored, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	refreshRepo.On("DeleteByToken", mock.Anything, stored.Token).Return(true, nil)
	refreshRepo.On("Replace", mock.Anything, mock.Anything).Return(nil)

	pair, err := svc.Rotate(context.Background(), stored.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, stored.Token, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, user.ID.String(), pair.UserID)

	claims, err := jwtSvc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, user.ID.String(), claims.UserID)
	refreshRepo.AssertExpectations(t)
}

func TestTokenService_Rotate_UnknownToken(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	refreshRepo.On("FindByToken", mock.Anything, "missing").Return(nil, domainErrors.ErrTokenNotFound)

	_, err := svc.Rotate(context.Background(), "missing")
	assert.ErrorIs(t, err, domainErrors.ErrTokenNotFound)
}

func TestTokenService_Rotate_ExpiredTokenDeleted(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	stored := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	refreshRepo.On("FindByToken", mock.Anything, stored.Token).Return(stored, nil)
	refreshRepo.On("DeleteByToken", mock.Anything, stored.Token).Return(true, nil)

	_, err := svc.Rotate(context.Background(), stored.Token)
	assert.ErrorIs(t, err, domainErrors.ErrExpiredToken)
	refreshRepo.AssertExpectations(t)
}

func TestTokenService_Rotate_ExpiryBoundaryCountsAsExpired(t *testing.T) {
	now := time.Now()
	token := &models.RefreshToken{ExpiresAt: now}
	assert.True(t, token.IsExpired(now))
}

func TestTokenService_Rotate_InactiveUser(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	user := activeUser()
	user.IsActive = false
	stored := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "banned-user-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	refreshRepo.On("FindByToken", mock.Anything, stored.Token).Return(stored, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err := svc.Rotate(context.Background(), stored.Token)
	assert.ErrorIs(t, err, domainErrors.ErrUserInactive)
	refreshRepo.AssertNotCalled(t, "DeleteByToken", mock.Anything, mock.Anything)
}

func TestTokenService_Rotate_LoserOfRaceFails(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	user := activeUser()
	stored := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "contested-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	refreshRepo.On("FindByToken", mock.Anything, stored.Token).Return(stored, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	// The other rotation already consumed the row.
	refreshRepo.On("DeleteByToken", mock.Anything, stored.Token).Return(false, nil)

	_, err := svc.Rotate(context.Background(), stored.Token)
	assert.ErrorIs(t, err, domainErrors.ErrTokenNotFound)
	refreshRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestTokenService_Consume_UnknownTokenIsNoop(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	refreshRepo.On("DeleteByToken", mock.Anything, "already-gone").Return(false, nil)

	err := svc.Consume(context.Background(), "already-gone")
	assert.NoError(t, err)
}

func TestTokenService_Revoke(t *testing.T) {
	refreshRepo := new(mockRefreshTokenRepository)
	userRepo := new(mockUserRepository)
	svc := newTestTokenService(refreshRepo, userRepo, newTestJWTService(t))

	userID := uuid.New()
	refreshRepo.On("DeleteByUserID", mock.Anything, userID).Return(nil)

	require.NoError(t, svc.Revoke(context.Background(), userID))
	refreshRepo.AssertExpectations(t)
}
