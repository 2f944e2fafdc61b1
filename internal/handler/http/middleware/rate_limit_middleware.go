// File: internal/handler/http/middleware/rate_limit_middleware.go
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	"github.com/lafoken/withfy-backend-open/internal/utils/rate"
)

// RateLimit ограничивает частоту запросов по IP клиента в пределах правила.
// При ошибке Redis запрос пропускается.
func RateLimit(limiter *rate.Limiter, name string, rule config.RateLimitRule, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", name, c.ClientIP())
		allowed, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
