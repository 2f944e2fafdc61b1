// File: internal/gateway/filter.go
package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/handler/http/middleware"
	"github.com/lafoken/withfy-backend-open/internal/infrastructure/security"
	"github.com/lafoken/withfy-backend-open/internal/utils/metrics"
)

const bearerPrefix = "Bearer "

// AuthFilter verifies access tokens at the edge and translates them into the
// trusted identity headers the upstream services consume. It never forwards a
// caller-supplied identity header.
type AuthFilter struct {
	policy     *Policy
	jwtService *security.JWTService
	logger     *zap.Logger
}

// NewAuthFilter creates a new AuthFilter.
func NewAuthFilter(policy *Policy, jwtService *security.JWTService, logger *zap.Logger) *AuthFilter {
	return &AuthFilter{policy: policy, jwtService: jwtService, logger: logger}
}

// Handler returns the gin middleware form of the filter.
func (f *AuthFilter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Strip any spoofed identity headers before classification so even
		// public routes cannot smuggle an identity upstream.
		c.Request.Header.Del(middleware.HeaderUserID)
		c.Request.Header.Del(middleware.HeaderUserEmail)
		c.Request.Header.Del(middleware.HeaderUserRoles)

		// CORS preflights carry no credentials.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		switch f.policy.Classify(c.Request.URL.Path) {
		case DecisionPublic:
			c.Next()
			return
		case DecisionDefault:
			if f.policy.DefaultAllow {
				c.Next()
				return
			}
			f.reject(c, "unmatched_path", "not found", http.StatusNotFound)
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			f.reject(c, "missing_token", "missing authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			f.reject(c, "malformed_header", "authorization header must use the Bearer scheme", http.StatusUnauthorized)
			return
		}

		claims, err := f.jwtService.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			f.reject(c, "invalid_token", "invalid or expired token", http.StatusUnauthorized)
			return
		}

		c.Request.Header.Set(middleware.HeaderUserID, claims.UserID)
		c.Request.Header.Set(middleware.HeaderUserEmail, claims.Subject)
		c.Request.Header.Set(middleware.HeaderUserRoles, claims.Roles.Join())
		c.Next()
	}
}

func (f *AuthFilter) reject(c *gin.Context, reason, message string, status int) {
	metrics.GatewayRejectionsTotal.WithLabelValues(reason).Inc()
	f.logger.Debug("Gateway rejected request",
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", reason),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
