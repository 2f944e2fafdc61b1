// File: internal/handler/http/auth_handler_test.go
package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	"github.com/lafoken/withfy-backend-open/internal/service"
)

func newCallbackRouter() *gin.Engine {
	oauthSvc := service.NewOAuthService(config.OAuthConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/login/oauth2/code/google",
		SuccessRedirectURL: "http://localhost:3000/oauth2/redirect",
	}, nil, nil, nil, zap.NewNop())
	handler := NewAuthHandler(nil, nil, oauthSvc, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login/oauth2/code/google", handler.OAuthCallback)
	return r
}

func TestOAuthCallback_MissingStateCookieRedirectsWithErrorCode(t *testing.T) {
	r := newCallbackRouter()

	req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=abc&code=xyz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "http://localhost:3000/?")
	assert.Contains(t, location, "error=invalid_state")
	assert.Contains(t, location, "message=")
}

func TestOAuthCallback_MismatchedStateRedirectsWithErrorCode(t *testing.T) {
	r := newCallbackRouter()

	req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=attacker&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "legit"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=invalid_state")
}

func TestOAuthCallback_MissingCodeRedirectsWithErrorCode(t *testing.T) {
	r := newCallbackRouter()

	req := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google?state=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "abc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=invalid_state")
}
