// File: internal/infrastructure/security/jwt_service.go
package security

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

const (
	authoritiesClaim = "auth"
	userIDClaim      = "userId"
)

// AccessTokenClaims is the verified content of an access token.
type AccessTokenClaims struct {
	Subject string // user email
	UserID  string
	Roles   models.Roles
}

// AccessTokenClaimsSchema is the wire layout of the signed token.
type accessTokenClaimsSchema struct {
	UserID      string `json:"userId"`
	Authorities string `json:"auth"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies access tokens with a shared HMAC-SHA512
// secret. It is pure: no state beyond the key material, safe for concurrent
// use.
type JWTService struct {
	key            []byte
	accessTokenTTL time.Duration
	logger         *zap.Logger
}

// NewJWTService decodes the base64 shared secret and returns the service.
func NewJWTService(base64Secret string, accessTokenTTL time.Duration, logger *zap.Logger) (*JWTService, error) {
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT secret: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("JWT secret must not be empty")
	}
	return &JWTService{key: key, accessTokenTTL: accessTokenTTL, logger: logger}, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// CreateAccessToken builds and signs an access token with claims
// {sub, userId, auth} and expiry now + configured TTL.
func (s *JWTService) CreateAccessToken(email, userID string, roles models.Roles) (string, error) {
	now := time.Now()
	claims := accessTokenClaimsSchema{
		UserID:      userID,
		Authorities: roles.Join(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry. Every structural, signature or
// expiry failure collapses to ErrInvalidToken; the cause is only logged.
func (s *JWTService) ValidateToken(tokenString string) (*AccessTokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &accessTokenClaimsSchema{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		s.logger.Warn("JWT validation error", zap.Error(err))
		return nil, domainErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*accessTokenClaimsSchema)
	if !ok || !parsed.Valid {
		return nil, domainErrors.ErrInvalidToken
	}

	return &AccessTokenClaims{
		Subject: claims.Subject,
		UserID:  claims.UserID,
		Roles:   models.ParseRoles(claims.Authorities),
	}, nil
}
