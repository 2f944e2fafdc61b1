// File: internal/service/auth_service.go
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
	"github.com/lafoken/withfy-backend-open/internal/events"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
)

// AuthService implements registration, credential login and session
// management on top of the user store and the token service.
type AuthService struct {
	userRepo        repository.UserRepository
	passwordService security.PasswordService
	tokenService    *TokenService
	publisher       events.Publisher
	logger          *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	passwordService security.PasswordService,
	tokenService *TokenService,
	publisher events.Publisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		publisher:       publisher,
		logger:          logger,
	}
}

// Register creates a local account with the default role and announces it on
// the event bus. Email uniqueness is enforced by the store.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	hash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:              uuid.New(),
		Email:           req.Email,
		PasswordHash:    &hash,
		FullName:        req.FullName,
		IsActive:        true,
		IsEmailVerified: false,
		AuthProvider:    models.AuthProviderLocal,
		Roles:           models.Roles{models.RoleUser},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishRegistered(ctx, user)

	return &models.RegisterResponse{
		UserID:   user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Message:  "User registered successfully",
	}, nil
}

// Login authenticates email/password credentials and issues a token pair.
// Unknown email, wrong password and banned account all collapse into
// ErrInvalidCredentials so the response does not leak which one failed. The
// one deliberate exception is a federated account without a password: the
// caller is told to use its provider instead.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.AuthProvider != models.AuthProviderLocal {
		return nil, domainErrors.WithMessage(
			domainErrors.ErrInvalidCredentials,
			fmt.Sprintf("Please login using your %s account.", user.AuthProvider),
		)
	}
	if !user.IsActive || user.PasswordHash == nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	ok, err := s.passwordService.CheckPasswordHash(req.Password, *user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return s.tokenService.IssuePair(ctx, user)
}

// Refresh rotates a refresh token into a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	return s.tokenService.Rotate(ctx, refreshToken)
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenService.Consume(ctx, refreshToken)
}

// CurrentUser resolves the authenticated principal's profile by email.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*models.CurrentUserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.CurrentUserResponse{
		UserID:       user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName,
		Roles:        user.Roles.OrDefault().Strings(),
		AuthProvider: string(user.AuthProvider),
	}, nil
}

func (s *AuthService) publishRegistered(ctx context.Context, user *models.User) {
	event := models.UserRegisteredEvent{
		UserID:       user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName,
		AuthProvider: string(user.AuthProvider),
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		// Registration already committed; the event is best-effort.
		s.logger.Error("Failed to publish user registered event",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
