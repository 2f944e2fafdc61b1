// File: internal/service/password_reset_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/domain/repository"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/email"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
)

// PasswordResetService implements the forgot/reset password flow with
// one-time opaque tokens delivered by email.
type PasswordResetService struct {
	userRepo        repository.UserRepository
	resetRepo       repository.PasswordResetTokenRepository
	passwordService security.PasswordService
	emailSender     email.Sender
	tokenTTL        time.Duration
	logger          *zap.Logger
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetTokenRepository,
	passwordService security.PasswordService,
	emailSender email.Sender,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:        userRepo,
		resetRepo:       resetRepo,
		passwordService: passwordService,
		emailSender:     emailSender,
		tokenTTL:        tokenTTL,
		logger:          logger,
	}
}

// Initiate creates a reset token for the account and mails it. The method
// succeeds silently for unknown emails so the endpoint cannot be used to
// probe which addresses are registered.
func (s *PasswordResetService) Initiate(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			s.logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := &models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().UTC().Add(s.tokenTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.resetRepo.Create(ctx, token); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, token.Token, user.FullName, s.tokenTTL); err != nil {
		return err
	}

	s.logger.Info("Password reset email sent", zap.String("user_id", user.ID.String()))
	return nil
}

// Complete validates the token, sets the new password and consumes the
// token. Expired tokens are deleted on sight; a consumed token can never
// reset twice.
func (s *PasswordResetService) Complete(ctx context.Context, tokenValue, newPassword string) error {
	token, err := s.resetRepo.FindByToken(ctx, tokenValue)
	if err != nil {
		if domainErrors.IsNotFound(err) || domainErrors.IsUnauthorized(err) {
			return domainErrors.ErrInvalidToken
		}
		return err
	}

	if token.IsExpired(time.Now()) {
		if _, err := s.resetRepo.DeleteByToken(ctx, tokenValue); err != nil {
			s.logger.Error("Failed to delete expired reset token", zap.Error(err))
		}
		return domainErrors.ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	hash, err := s.passwordService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	deleted, err := s.resetRepo.DeleteByToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if !deleted {
		s.logger.Warn("Reset token already consumed concurrently",
			zap.String("user_id", user.ID.String()))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}
