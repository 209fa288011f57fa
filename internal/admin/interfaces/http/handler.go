// Package http 管理端身份 HTTP 接口
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/investplatform/internal/admin/application"
)

// IdentityHandler 身份管理接口
type IdentityHandler struct {
	app *application.IdentityService
}

// NewIdentityHandler 创建身份处理器
func NewIdentityHandler(app *application.IdentityService) *IdentityHandler {
	return &IdentityHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *IdentityHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/admins", h.RegisterAdmin)
		api.POST("/profiles", h.SaveProfile)
	}
}

type registerAdminRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Role     string `json:"role"`
}

// RegisterAdmin 创建管理员账户
func (h *IdentityHandler) RegisterAdmin(c *gin.Context) {
	var req registerAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.app.RegisterAdmin(c.Request.Context(), req.UserID, req.Username, req.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": req.UserID})
}

type saveProfileRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email"`
}

// SaveProfile 新增或更新用户资料
func (h *IdentityHandler) SaveProfile(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.app.SaveProfile(c.Request.Context(), req.UserID, req.DisplayName, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID})
}
