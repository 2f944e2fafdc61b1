// File: internal/infrastructure/security/jwt_service_test.go
package security

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/lafoken/withfy-backend-open/internal/domain/errors"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

func newTestJWTService(t *testing.T, ttl time.Duration) *JWTService {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("test-secret-key-for-hs512-signing-0123456789"))
	svc, err := NewJWTService(secret, ttl, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	roles := models.Roles{models.RoleUser, models.RoleAdmin}
	token, err := svc.CreateAccessToken("user@example.com", "user-id-1", roles)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, "user-id-1", claims.UserID)
	assert.Equal(t, roles, claims.Roles)
}

func TestJWTService_EmptyRoles(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token, err := svc.CreateAccessToken("user@example.com", "user-id-1", models.Roles{})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Roles)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	token, err := svc.CreateAccessToken("user@example.com", "user-id-1", models.Roles{models.RoleUser})
	require.NoError(t, err)

	// Flip one character in the payload section.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = svc.ValidateToken(string(tampered))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, -time.Minute)

	token, err := svc.CreateAccessToken("user@example.com", "user-id-1", models.Roles{models.RoleUser})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(input)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
	}
}

func TestJWTService_WrongKey(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)

	otherSecret := base64.StdEncoding.EncodeToString([]byte("a-completely-different-signing-secret-value"))
	other, err := NewJWTService(otherSecret, time.Hour, zap.NewNop())
	require.NoError(t, err)

	token, err := svc.CreateAccessToken("user@example.com", "user-id-1", models.Roles{models.RoleUser})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestNewJWTService_BadSecret(t *testing.T) {
	_, err := NewJWTService("%%%not-base64%%%", time.Hour, zap.NewNop())
	assert.Error(t, err)

	_, err = NewJWTService("", time.Hour, zap.NewNop())
	assert.Error(t, err)
}
