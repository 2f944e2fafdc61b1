// File: internal/handler/http/router.go
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/handler/http/middleware"
	"github.com/lafoken/withfy-backend-open/internal/utils/rate"
)

// RouterDeps bundles everything the identity router needs.
type RouterDeps struct {
	AuthHandler  *AuthHandler
	AdminHandler *AdminHandler
	Limiter      *rate.Limiter
	Security     config.SecurityConfig
	Logger       *zap.Logger
}

// NewRouter wires the identity-service HTTP surface.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Spring-style OAuth2 entry points, kept at the root so the provider
	// redirect URI stays stable.
	router.GET("/oauth2/authorization/google", deps.AuthHandler.OAuthLogin)
	router.GET("/login/oauth2/code/google", deps.AuthHandler.OAuthCallback)

	rl := deps.Security.RateLimiting
	auth := router.Group("/api/v1/identity/auth")
	{
		auth.POST("/register",
			middleware.RateLimit(deps.Limiter, "register", rl.RegisterIP, deps.Logger),
			deps.AuthHandler.Register)
		auth.POST("/login",
			middleware.RateLimit(deps.Limiter, "login", rl.LoginIP, deps.Logger),
			deps.AuthHandler.Login)
		auth.POST("/refresh", deps.AuthHandler.Refresh)
		auth.POST("/logout", middleware.Identity(), deps.AuthHandler.Logout)
		auth.POST("/forgot-password",
			middleware.RateLimit(deps.Limiter, "forgot-password", rl.ForgotPassword, deps.Logger),
			deps.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", deps.AuthHandler.ResetPassword)
		auth.GET("/me", middleware.Identity(), deps.AuthHandler.Me)
		auth.GET("/oauth2/login/google", deps.AuthHandler.OAuthLogin)
	}

	admin := router.Group("/api/v1/identity/admin")
	{
		// One-shot bootstrap; refuses itself once any admin exists.
		admin.POST("/init-fixed-admin", deps.AdminHandler.InitAdmin)

		authed := admin.Group("", middleware.Identity())
		authed.GET("/check-admin-role", deps.AdminHandler.CheckAdminRole)

		privileged := authed.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			privileged.GET("/users", deps.AdminHandler.ListUsers)
			privileged.POST("/users/:userId/grant-admin", deps.AdminHandler.GrantAdmin)
			privileged.POST("/users/:userId/ban", deps.AdminHandler.BanUser)
			privileged.POST("/users/:userId/unban", deps.AdminHandler.UnbanUser)
		}
	}

	return router
}
