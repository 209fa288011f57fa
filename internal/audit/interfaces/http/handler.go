// Package http 审计视图的 HTTP 接口
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/investplatform/internal/audit/application"
	"github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
)

// AuditHandler 审计 HTTP 处理器
type AuditHandler struct {
	reader *application.TrailReader
}

// NewAuditHandler 创建 HTTP 处理器
func NewAuditHandler(reader *application.TrailReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// RegisterRoutes 注册路由
func (h *AuditHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/audit")
	{
		api.GET("", h.List)
		api.GET("/:id", h.Get)
	}
}

// List 按过滤条件分页查询审计条目
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := domain.Filter{
		Text:     c.Query("q"),
		Severity: domain.Severity(c.Query("severity")),
		Action:   c.Query("action"),
	}

	view, err := h.reader.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list audit entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit entries"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Get 查询单条审计条目
func (h *AuditHandler) Get(c *gin.Context) {
	view, err := h.reader.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}
