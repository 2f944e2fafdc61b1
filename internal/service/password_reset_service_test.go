// File: internal/service/password_reset_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

type resetFixture struct {
	userRepo  *mockUserRepository
	resetRepo *mockPasswordResetTokenRepository
	password  *mockPasswordService
	sender    *mockEmailSender
	svc       *PasswordResetService
}

func newResetFixture() *resetFixture {
	f := &resetFixture{
		userRepo:  new(mockUserRepository),
		resetRepo: new(mockPasswordResetTokenRepository),
		password:  new(mockPasswordService),
		sender:    new(mockEmailSender),
	}
	f.svc = NewPasswordResetService(f.userRepo, f.resetRepo, f.password, f.sender, 30*time.Minute, zap.NewNop())
	return f
}

func TestPasswordReset_Initiate_SendsEmail(t *testing.T) {
	f := newResetFixture()
	user := activeUser()

	f.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(tok *models.PasswordResetToken) bool {
		return tok.UserID == user.ID && tok.Token != "" && tok.ExpiresAt.After(time.Now())
	})).Return(nil)
	f.sender.On("SendPasswordResetEmail", mock.Anything, user.Email, mock.Anything, user.FullName, 30*time.Minute).Return(nil)

	require.NoError(t, f.svc.Initiate(context.Background(), user.Email))
	f.sender.AssertExpectations(t)
}

func TestPasswordReset_Initiate_UnknownEmailStaysSilent(t *testing.T) {
	f := newResetFixture()

	f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domainErrors.ErrUserNotFound)

	// Success even for unknown addresses, so the endpoint cannot enumerate
	// registered emails.
	assert.NoError(t, f.svc.Initiate(context.Background(), "ghost@example.com"))
	f.resetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordReset_Complete_Success(t *testing.T) {
	f := newResetFixture()
	user := activeUser()
	token := &models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "reset-token",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	f.resetRepo.On("FindByToken", mock.Anything, token.Token).Return(token, nil)
	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.password.On("HashPassword", "brand-new-pass").Return("new-hash", nil)
	f.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.PasswordHash != nil && *u.PasswordHash == "new-hash"
	})).Return(nil)
	f.resetRepo.On("DeleteByToken", mock.Anything, token.Token).Return(true, nil)

	require.NoError(t, f.svc.Complete(context.Background(), token.Token, "brand-new-pass"))
	f.resetRepo.AssertExpectations(t)
}

func TestPasswordReset_Complete_UnknownToken(t *testing.T) {
	f := newResetFixture()

	f.resetRepo.On("FindByToken", mock.Anything, "bogus").Return(nil, domainErrors.ErrTokenNotFound)

	err := f.svc.Complete(context.Background(), "bogus", "brand-new-pass")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestPasswordReset_Complete_ExpiredTokenIsDeleted(t *testing.T) {
	f := newResetFixture()
	token := &models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	f.resetRepo.On("FindByToken", mock.Anything, token.Token).Return(token, nil)
	f.resetRepo.On("DeleteByToken", mock.Anything, token.Token).Return(true, nil)

	err := f.svc.Complete(context.Background(), token.Token, "brand-new-pass")
	assert.ErrorIs(t, err, domainErrors.ErrExpiredToken)
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.resetRepo.AssertExpectations(t)
}

func TestPasswordReset_Complete_CannotResetTwice(t *testing.T) {
	f := newResetFixture()

	// After a successful reset the token row is gone, so the second attempt
	// sees an unknown token.
	f.resetRepo.On("FindByToken", mock.Anything, "used-token").Return(nil, domainErrors.ErrTokenNotFound)

	err := f.svc.Complete(context.Background(), "used-token", "another-pass")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}
