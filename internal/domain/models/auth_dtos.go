// File: internal/domain/models/auth_dtos.go
package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// RegisterResponse is returned with 201 on successful registration.
type RegisterResponse struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Message  string `json:"message"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the body of POST /auth/refresh and /auth/logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is the login/refresh response body.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	UserID       string `json:"userId"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// CurrentUserResponse is the body of GET /auth/me.
type CurrentUserResponse struct {
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	Roles        []string `json:"roles"`
	AuthProvider string   `json:"authProvider"`
}

// AdminUserView is a user as seen through the admin listing.
type AdminUserView struct {
	UserID          string   `json:"userId"`
	Email           string   `json:"email"`
	FullName        string   `json:"fullName"`
	IsActive        bool     `json:"isActive"`
	IsEmailVerified bool     `json:"isEmailVerified"`
	AuthProvider    string   `json:"authProvider"`
	Roles           []string `json:"roles"`
	CreatedAt       string   `json:"createdAt"`
}

// NewAdminUserView maps a user to its admin listing form.
func NewAdminUserView(u *User) AdminUserView {
	return AdminUserView{
		UserID:          u.ID.String(),
		Email:           u.Email,
		FullName:        u.FullName,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		AuthProvider:    string(u.AuthProvider),
		Roles:           u.Roles.Strings(),
		CreatedAt:       u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PageResponse is the envelope of paged admin listings.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
	First         bool  `json:"first"`
}

// IsAdminResponse is the body of GET /admin/check-admin-role.
type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}
