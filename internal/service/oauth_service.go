// File: internal/service/oauth_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/lafoken/withfy-backend-open/internal/config"
	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/domain/repository"
	"github.com/lafoken/withfy-backend-open/internal/events"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Error codes carried back to the frontend in the ?error= query parameter,
// each paired with a human-readable ?message=.
const (
	oauthErrEmailMissing = "oauth_email_missing"
	oauthErrBanned       = "account_banned"
	oauthErrProcessing   = "processing_error"
	oauthErrInvalidState = "invalid_state"
)

var oauthErrMessages = map[string]string{
	oauthErrEmailMissing: "Email was not provided by the OAuth2 provider",
	oauthErrBanned:       "Your account has been banned",
	oauthErrProcessing:   "An error occurred while processing the login",
	oauthErrInvalidState: "The login request could not be validated",
}

// googleUserInfo is the subset of the userinfo response we read.
type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// OAuthService implements the Google authorization-code flow and resolves
// the federated identity into a local account.
type OAuthService struct {
	oauthConfig        *oauth2.Config
	userRepo           repository.UserRepository
	tokenService       *TokenService
	publisher          events.Publisher
	successRedirectURL string
	errorRedirectURL   string
	httpClient         *http.Client
	userInfoURL        string
	logger             *zap.Logger
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(
	cfg config.OAuthConfig,
	userRepo repository.UserRepository,
	tokenService *TokenService,
	publisher events.Publisher,
	logger *zap.Logger,
) *OAuthService {
	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userRepo:           userRepo,
		tokenService:       tokenService,
		publisher:          publisher,
		successRedirectURL: cfg.SuccessRedirectURL,
		errorRedirectURL:   siteRoot(cfg.SuccessRedirectURL),
		httpClient:         &http.Client{Timeout: 10 * time.Second},
		userInfoURL:        googleUserInfoURL,
		logger:             logger,
	}
}

// siteRoot trims the success URL down to its origin for error redirects.
func siteRoot(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host + "/"
}

// AuthCodeURL builds the Google consent page URL for the given state value.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// InvalidStateRedirect is the frontend redirect for a callback whose state
// cookie or code parameter failed validation. Like every other flow failure
// it surfaces as a redirect, never as an error body.
func (s *OAuthService) InvalidStateRedirect() string {
	return s.errorRedirect(oauthErrInvalidState)
}

// HandleCallback completes the code exchange and always answers with a
// frontend redirect URL: tokens as query parameters on success, an error
// code on the site root otherwise.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) string {
	info, err := s.fetchUserInfo(ctx, code)
	if err != nil {
		s.logger.Error("OAuth code exchange failed", zap.Error(err))
		return s.errorRedirect(oauthErrProcessing)
	}
	if strings.TrimSpace(info.Email) == "" {
		s.logger.Warn("OAuth provider returned no email")
		return s.errorRedirect(oauthErrEmailMissing)
	}

	user, err := s.Resolve(ctx, info)
	if err != nil {
		if domainErrors.IsUnauthorized(err) {
			return s.errorRedirect(oauthErrBanned)
		}
		s.logger.Error("Failed to resolve federated identity", zap.Error(err))
		return s.errorRedirect(oauthErrProcessing)
	}

	pair, err := s.tokenService.IssuePair(ctx, user)
	if err != nil {
		s.logger.Error("Failed to issue tokens after OAuth login",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return s.errorRedirect(oauthErrProcessing)
	}

	return s.successRedirect(pair)
}

// Resolve maps a verified federated identity onto a local account: existing
// active accounts are reconciled in place, banned accounts are rejected
// without mutation, unknown emails get a fresh federated account. The method
// is idempotent: a second call with the same identity writes nothing.
func (s *OAuthService) Resolve(ctx context.Context, info googleUserInfo) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return s.createFederatedUser(ctx, info)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domainErrors.ErrUserInactive
	}

	changed := false
	if user.FullName != info.Name && info.Name != "" {
		user.FullName = info.Name
		changed = true
	}
	if user.AuthProvider != models.AuthProviderGoogle {
		user.AuthProvider = models.AuthProviderGoogle
		changed = true
	}
	if !user.IsEmailVerified {
		// Completing the provider handshake proves ownership of the email.
		user.IsEmailVerified = true
		changed = true
	}
	if len(user.Roles) == 0 {
		user.Roles = user.Roles.OrDefault()
		changed = true
	}

	if changed {
		user.UpdatedAt = time.Now().UTC()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *OAuthService) createFederatedUser(ctx context.Context, info googleUserInfo) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:              uuid.New(),
		Email:           info.Email,
		PasswordHash:    nil,
		FullName:        info.Name,
		IsActive:        true,
		IsEmailVerified: true,
		AuthProvider:    models.AuthProviderGoogle,
		Roles:           models.Roles{models.RoleUser},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	event := models.UserRegisteredEvent{
		UserID:       user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName,
		AuthProvider: string(user.AuthProvider),
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Error("Failed to publish user registered event",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return user, nil
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, code string) (googleUserInfo, error) {
	var info googleUserInfo

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return info, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return info, err
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return info, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return info, fmt.Errorf("userinfo endpoint returned %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("failed to decode user info: %w", err)
	}
	return info, nil
}

func (s *OAuthService) successRedirect(pair *models.AuthResponse) string {
	q := url.Values{}
	q.Set("accessToken", pair.AccessToken)
	q.Set("refreshToken", pair.RefreshToken)
	q.Set("userId", pair.UserID)
	q.Set("expiresIn", fmt.Sprintf("%d", pair.ExpiresIn))
	return s.successRedirectURL + "?" + q.Encode()
}

func (s *OAuthService) errorRedirect(code string) string {
	q := url.Values{}
	q.Set("error", code)
	if msg, ok := oauthErrMessages[code]; ok {
		q.Set("message", msg)
	}
	return s.errorRedirectURL + "?" + q.Encode()
}
