// Package http 分诊视图的 HTTP 接口
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/investplatform/internal/triage/application"
	"github.com/wyfcoding/investplatform/pkg/logger"
)

// TriageHandler 分诊 HTTP 处理器
type TriageHandler struct {
	app *application.Aggregator
}

// NewTriageHandler 创建 HTTP 处理器
func NewTriageHandler(app *application.Aggregator) *TriageHandler {
	return &TriageHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *TriageHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/triage")
	{
		api.GET("/status-counts", h.StatusCounts)
		api.GET("/folders", h.FolderTree)
		api.POST("/folders", h.CreateFolder)
		api.DELETE("/folders/:id", h.DeleteFolder)
	}
}

// StatusCounts 状态桶计数
func (h *TriageHandler) StatusCounts(c *gin.Context) {
	counts, err := h.app.StatusCounts(c.Request.Context(), c.Query("entity_type"))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to aggregate status counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate status counts"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// FolderTree 文件夹树
func (h *TriageHandler) FolderTree(c *gin.Context) {
	tree, err := h.app.FolderTree(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to build folder tree", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build folder tree"})
		return
	}
	c.JSON(http.StatusOK, tree)
}

type createFolderRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

// CreateFolder 创建文件夹
func (h *TriageHandler) CreateFolder(c *gin.Context) {
	var body createFolderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder, err := h.app.CreateFolder(c.Request.Context(), body.Name, body.ParentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, folder)
}

// DeleteFolder 删除文件夹并解除成员关联
func (h *TriageHandler) DeleteFolder(c *gin.Context) {
	if err := h.app.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
