// File: internal/handler/http/auth_handler.go
package http

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/handler/http/middleware"
	"github.com/lafoken/withfy-backend-open/internal/service"
	"github.com/lafoken/withfy-backend-open/internal/utils/metrics"
)

const oauthStateCookie = "oauth_state"

// AuthHandler serves the public authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
	oauthService *service.OAuthService
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	resetService *service.PasswordResetService,
	oauthService *service.OAuthService,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		oauthService: oauthService,
		logger:       logger,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		RespondWithError(c, h.logger, err)
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		RespondWithError(c, h.logger, err)
		return
	}
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout. Always 204: revoking an unknown token is
// indistinguishable from revoking a live one.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me behind the identity middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	email := middleware.UserEmailFrom(c)
	resp, err := h.authService.CurrentUser(c.Request.Context(), email)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForgotPassword handles POST /auth/forgot-password. The response is 202
// with no body whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	if err := h.resetService.Initiate(c.Request.Context(), req.Email); err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// ResetPassword handles POST /auth/reset-password. Bad tokens are a client
// error here, not an authentication failure.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	if err := h.resetService.Complete(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidToken) || errors.Is(err, domainErrors.ErrExpiredToken) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: domainErrors.Message(err)})
			return
		}
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// OAuthLogin handles GET /oauth2/authorization/google: it plants the CSRF
// state cookie and redirects to the provider's consent page.
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, h.oauthService.AuthCodeURL(state))
}

// OAuthCallback handles GET /login/oauth2/code/google. Every outcome is a
// redirect back to the frontend.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	state := c.Query("state")
	code := c.Query("code")
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	if err != nil || state == "" || state != expectedState || code == "" {
		h.logger.Warn("OAuth callback with bad state or missing code")
		c.Redirect(http.StatusFound, h.oauthService.InvalidStateRedirect())
		return
	}

	c.Redirect(http.StatusFound, h.oauthService.HandleCallback(c.Request.Context(), code))
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
