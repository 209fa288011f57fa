// Package http 资金请求的 HTTP 接口
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	approvaldomain "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/internal/request/application"
	"github.com/wyfcoding/investplatform/pkg/logger"
)

// RequestHandler 资金请求 HTTP 处理器
type RequestHandler struct {
	app *application.RequestService
}

// NewRequestHandler 创建 HTTP 处理器
func NewRequestHandler(app *application.RequestService) *RequestHandler {
	return &RequestHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *RequestHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/requests")
	{
		api.POST("", h.Submit)
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.POST("/:id/approve", h.Approve)
		api.POST("/:id/reject", h.Reject)
	}
}

type transitionRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	Note    string `json:"note"`
}

// Submit 提交资金请求
func (h *RequestHandler) Submit(c *gin.Context) {
	var cmd application.SubmitRequestCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.app.Submit(c.Request.Context(), cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto)
}

// Get 查询单个请求
func (h *RequestHandler) Get(c *gin.Context) {
	dto, err := h.app.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// List 按状态分页查询
func (h *RequestHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	dto, err := h.app.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list requests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Approve 批准请求
func (h *RequestHandler) Approve(c *gin.Context) {
	h.transition(c, h.app.Approve)
}

// Reject 驳回请求
func (h *RequestHandler) Reject(c *gin.Context) {
	h.transition(c, h.app.Reject)
}

func (h *RequestHandler) transition(c *gin.Context, fn func(ctx context.Context, requestID, actorID, note string) (*application.TransitionDTO, error)) {
	var body transitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := fn(c.Request.Context(), c.Param("id"), body.ActorID, body.Note)
	if err != nil {
		status, msg := WorkflowErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, dto)
}

// WorkflowErrorStatus 将工作流错误映射为 HTTP 状态码与用户可见消息
func WorkflowErrorStatus(err error) (int, string) {
	var we *approvaldomain.WorkflowError
	if !errors.As(err, &we) {
		return http.StatusInternalServerError, "internal error"
	}

	switch we.Code {
	case approvaldomain.CodeUnauthorized:
		return http.StatusForbidden, we.Message
	case approvaldomain.CodeNotFound:
		return http.StatusNotFound, we.Message
	case approvaldomain.CodeInvalidTransition:
		return http.StatusConflict, we.Message
	case approvaldomain.CodeIncompletePayload:
		return http.StatusBadRequest, we.Message
	default:
		return http.StatusInternalServerError, we.Message
	}
}
