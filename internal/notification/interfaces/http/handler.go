// Package http 通知服务 HTTP 接口
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/investplatform/internal/notification/application"
)

// NotificationHandler 通知查询接口
type NotificationHandler struct {
	app *application.Dispatcher
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(app *application.Dispatcher) *NotificationHandler {
	return &NotificationHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *NotificationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/notifications")
	{
		api.GET("", h.History)
	}
}

// History 查询某目标最近的通知记录
func (h *NotificationHandler) History(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.app.History(c.Request.Context(), target, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
