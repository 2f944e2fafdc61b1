// File: internal/service/admin_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/domain/repository"
	"github.com/lafoken/withfy-backend-open/internal/events"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
)

// AdminService implements the privileged user-management surface.
type AdminService struct {
	userRepo        repository.UserRepository
	tokenService    *TokenService
	passwordService security.PasswordService
	publisher       events.Publisher
	logger          *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	tokenService *TokenService,
	passwordService security.PasswordService,
	publisher events.Publisher,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		publisher:       publisher,
		logger:          logger,
	}
}

// GrantAdminRole adds ROLE_ADMIN to the user. Granting twice is a no-op.
func (s *AdminService) GrantAdminRole(ctx context.Context, userID uuid.UUID) (*models.AdminUserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Roles.Contains(models.RoleAdmin) {
		user.Roles = user.Roles.OrDefault().Add(models.RoleAdmin)
		user.UpdatedAt = time.Now().UTC()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Granted admin role", zap.String("user_id", userID.String()))
	}

	view := models.NewAdminUserView(user)
	return &view, nil
}

// BanUser deactivates the account and revokes its refresh token so the
// session dies at the next rotation. Access tokens already in flight stay
// valid until expiry; downstream services learn of the ban from the event.
func (s *AdminService) BanUser(ctx context.Context, userID uuid.UUID) (*models.AdminUserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsActive {
		user.IsActive = false
		user.UpdatedAt = time.Now().UTC()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		if err := s.tokenService.Revoke(ctx, userID); err != nil {
			s.logger.Error("Failed to revoke refresh token on ban",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
		event := models.UserBannedEvent{UserID: userID.String()}
		if err := s.publisher.PublishUserBanned(ctx, event); err != nil {
			s.logger.Error("Failed to publish user banned event",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
		s.logger.Info("User banned", zap.String("user_id", userID.String()))
	}

	view := models.NewAdminUserView(user)
	return &view, nil
}

// UnbanUser reactivates the account.
func (s *AdminService) UnbanUser(ctx context.Context, userID uuid.UUID) (*models.AdminUserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		user.IsActive = true
		user.UpdatedAt = time.Now().UTC()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("User unbanned", zap.String("user_id", userID.String()))
	}

	view := models.NewAdminUserView(user)
	return &view, nil
}

// ListUsersPaged returns one page of users for the admin console.
func (s *AdminService) ListUsersPaged(ctx context.Context, page, size int) (*models.PageResponse[models.AdminUserView], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	users, total, err := s.userRepo.ListPaged(ctx, page, size)
	if err != nil {
		return nil, err
	}

	content := make([]models.AdminUserView, 0, len(users))
	for _, u := range users {
		content = append(content, models.NewAdminUserView(u))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &models.PageResponse[models.AdminUserView]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
		First:         page == 0,
	}, nil
}

// InitFixedAdmin bootstraps the configured admin account. The operation is
// one-shot: once any admin exists it is refused with ErrOperationNotAllowed.
func (s *AdminService) InitFixedAdmin(ctx context.Context, cfgEmail, cfgPassword, cfgFullName string) (*models.AdminUserView, error) {
	exists, err := s.userRepo.HasUserWithRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrOperationNotAllowed
	}

	// If the configured email is already registered, promote it instead of
	// creating a duplicate.
	user, err := s.userRepo.FindByEmail(ctx, cfgEmail)
	if err == nil {
		return s.GrantAdminRole(ctx, user.ID)
	}
	if !domainErrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.passwordService.HashPassword(cfgPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &models.User{
		ID:              uuid.New(),
		Email:           cfgEmail,
		PasswordHash:    &hash,
		FullName:        cfgFullName,
		IsActive:        true,
		IsEmailVerified: true,
		AuthProvider:    models.AuthProviderLocal,
		Roles:           models.Roles{models.RoleUser, models.RoleAdmin},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Fixed admin account created", zap.String("user_id", admin.ID.String()))
	view := models.NewAdminUserView(admin)
	return &view, nil
}

// CheckAdminRole reports whether the user carries ROLE_ADMIN.
func (s *AdminService) CheckAdminRole(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Roles.Contains(models.RoleAdmin), nil
}
