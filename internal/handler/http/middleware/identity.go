// File: internal/handler/http/middleware/identity.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// Trusted identity headers injected by the gateway after token verification.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRoles = "X-User-Roles"
)

// Gin context keys for the resolved principal.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRoles = "userRoles"
)

// Identity reads the trusted headers set by the gateway and places the
// principal into the request context. Both the id and email headers must be
// present: the service sits behind the gateway and never sees raw tokens.
// The roles header may legitimately be empty.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		userEmail := strings.TrimSpace(c.GetHeader(HeaderUserEmail))
		if userID == "" || userEmail == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, userEmail)
		c.Set(ContextUserRoles, models.ParseRoles(c.GetHeader(HeaderUserRoles)))
		c.Next()
	}
}

// UserIDFrom returns the authenticated principal's id from the context.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// UserEmailFrom returns the authenticated principal's email from the context.
func UserEmailFrom(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}

// UserRolesFrom returns the principal's roles from the context.
func UserRolesFrom(c *gin.Context) models.Roles {
	v, ok := c.Get(ContextUserRoles)
	if !ok {
		return models.Roles{}
	}
	roles, ok := v.(models.Roles)
	if !ok {
		return models.Roles{}
	}
	return roles
}
