// File: internal/handler/http/middleware/role_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// RequireRole rejects the request with 403 when the principal resolved by
// Identity does not carry the given role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !UserRolesFrom(c).Contains(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges"})
			return
		}
		c.Next()
	}
}
