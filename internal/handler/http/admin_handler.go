// File: internal/handler/http/admin_handler.go
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
	"github.com/lafoken/withfy-backend-open/internal/domain/models"
	"github.com/lafoken/withfy-backend-open/internal/handler/http/middleware"
	"github.com/lafoken/withfy-backend-open/internal/service"
)

// AdminHandler serves the privileged user-management endpoints.
type AdminHandler struct {
	adminService *service.AdminService
	adminConfig  config.AdminConfig
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, adminConfig config.AdminConfig, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, adminConfig: adminConfig, logger: logger}
}

func (h *AdminHandler) pathUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

// ListUsers handles GET /admin/users?page=&size=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	resp, err := h.adminService.ListUsersPaged(c.Request.Context(), page, size)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GrantAdmin handles POST /admin/users/:userId/grant-admin.
func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	id, ok := h.pathUserID(c)
	if !ok {
		return
	}
	view, err := h.adminService.GrantAdminRole(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// BanUser handles POST /admin/users/:userId/ban.
func (h *AdminHandler) BanUser(c *gin.Context) {
	id, ok := h.pathUserID(c)
	if !ok {
		return
	}
	view, err := h.adminService.BanUser(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UnbanUser handles POST /admin/users/:userId/unban.
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	id, ok := h.pathUserID(c)
	if !ok {
		return
	}
	view, err := h.adminService.UnbanUser(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// InitAdmin handles POST /admin/init-fixed-admin. It bootstraps the
// configured admin and refuses with 403 once any admin exists.
func (h *AdminHandler) InitAdmin(c *gin.Context) {
	view, err := h.adminService.InitFixedAdmin(c.Request.Context(),
		h.adminConfig.Email, h.adminConfig.Password, h.adminConfig.FullName)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// CheckAdminRole handles GET /admin/check-admin-role for the calling user.
func (h *AdminHandler) CheckAdminRole(c *gin.Context) {
	id, err := uuid.Parse(middleware.UserIDFrom(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}
	isAdmin, err := h.adminService.CheckAdminRole(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.IsAdminResponse{IsAdmin: isAdmin})
}
