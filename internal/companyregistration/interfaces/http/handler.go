// Package http 公司注册申请的 HTTP 接口
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/investplatform/internal/companyregistration/application"
	requesthttp "github.com/wyfcoding/investplatform/internal/request/interfaces/http"
	"github.com/wyfcoding/investplatform/pkg/logger"
)

// RegistrationHandler 公司注册 HTTP 处理器
type RegistrationHandler struct {
	app *application.RegistrationService
}

// NewRegistrationHandler 创建 HTTP 处理器
func NewRegistrationHandler(app *application.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *RegistrationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/registrations")
	{
		api.POST("", h.Submit)
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.POST("/:id/select-name", h.SelectName)
		api.POST("/:id/approve", h.Approve)
		api.POST("/:id/reject", h.Reject)
	}

	companies := router.Group("/api/v1/companies")
	{
		companies.GET("/:id", h.GetCompany)
		companies.GET("", h.ListCompanies)
	}
}

// Submit 提交注册申请
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var cmd application.SubmitRegistrationCommand
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

// Get 查询单个申请
func (h *RegistrationHandler) Get(c *gin.Context) {
	dto, err := h.app.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// List 按状态分页查询
func (h *RegistrationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	dto, err := h.app.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list registrations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}
	c.JSON(http.StatusOK, dto)
}

type selectNameRequest struct {
	ActorID      string `json:"actor_id" binding:"required"`
	SelectedName string `json:"selected_name" binding:"required"`
	Note         string `json:"note"`
}

// SelectName 选定公司名称
func (h *RegistrationHandler) SelectName(c *gin.Context) {
	var body selectNameRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.app.SelectName(c.Request.Context(), c.Param("id"), body.ActorID, body.SelectedName, body.Note)
	if err != nil {
		status, msg := requesthttp.WorkflowErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, dto)
}

type approveRequest struct {
	ActorID            string `json:"actor_id" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	IncorporationDate  string `json:"incorporation_date" binding:"required"`
	Note               string `json:"note"`
}

// Approve 批准注册并创建公司
func (h *RegistrationHandler) Approve(c *gin.Context) {
	var body approveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.app.Approve(c.Request.Context(), c.Param("id"), body.ActorID, body.RegistrationNumber, body.IncorporationDate, body.Note)
	if err != nil {
		status, msg := requesthttp.WorkflowErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, dto)
}

type rejectRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	Note    string `json:"note"`
}

// Reject 驳回申请
func (h *RegistrationHandler) Reject(c *gin.Context) {
	var body rejectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.app.Reject(c.Request.Context(), c.Param("id"), body.ActorID, body.Note)
	if err != nil {
		status, msg := requesthttp.WorkflowErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetCompany 查询已注册公司
func (h *RegistrationHandler) GetCompany(c *gin.Context) {
	dto, err := h.app.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ListCompanies 按所有者查询已注册公司
func (h *RegistrationHandler) ListCompanies(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id is required"})
		return
	}

	dtos, err := h.app.ListCompaniesByOwner(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list companies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, dtos)
}
