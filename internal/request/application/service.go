// Package application 资金请求的应用服务
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/investplatform/internal/approval"
	approvaldomain "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/internal/request/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RequestService 资金请求服务：提交（用户侧）、审批迁移（管理员侧）与查询
type RequestService struct {
	engine *approval.Engine
	def    approvaldomain.Definition
	repo   domain.RequestRepository
	idgen  *utils.SnowflakeID
}

// NewRequestService 创建资金请求服务
func NewRequestService(engine *approval.Engine, repo domain.RequestRepository, idgen *utils.SnowflakeID) *RequestService {
	return &RequestService{
		engine: engine,
		def:    domain.NewWorkflowDefinition(),
		repo:   repo,
		idgen:  idgen,
	}
}

// Submit 提交资金请求，初始状态 pending
func (s *RequestService) Submit(ctx context.Context, cmd SubmitRequestCommand) (*RequestDTO, error) {
	kind := domain.Kind(cmd.Kind)
	if !domain.ValidKind(kind) {
		return nil, fmt.Errorf("invalid request kind: %s", cmd.Kind)
	}

	amount, err := decimal.NewFromString(cmd.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("currency must be an ISO 4217 code")
	}
	if cmd.SubmitterID == "" || cmd.SubmitterEmail == "" {
		return nil, fmt.Errorf("submitter id and email are required")
	}

	req := &domain.Request{
		RequestID:      s.idgen.GenerateWithPrefix("req"),
		SubmitterID:    cmd.SubmitterID,
		SubmitterEmail: cmd.SubmitterEmail,
		Kind:           kind,
		Amount:         amount,
		Currency:       currency,
		Status:         domain.StatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger.Info(ctx, "request submitted",
		"request_id", req.RequestID,
		"kind", string(kind),
		"amount", amount.String(),
		"currency", currency,
	)

	return toRequestDTO(req), nil
}

// Approve 批准请求：pending → processing，通知提交者
func (s *RequestService) Approve(ctx context.Context, requestID, actorID, note string) (*TransitionDTO, error) {
	return s.transition(ctx, requestID, actorID, approvaldomain.ActionApprove, note)
}

// Reject 驳回请求：pending → rejected，通知提交者
func (s *RequestService) Reject(ctx context.Context, requestID, actorID, note string) (*TransitionDTO, error) {
	return s.transition(ctx, requestID, actorID, approvaldomain.ActionReject, note)
}

func (s *RequestService) transition(ctx context.Context, requestID, actorID string, action approvaldomain.Action, note string) (*TransitionDTO, error) {
	res, err := s.engine.Transition(ctx, s.def, requestID, actorID, action, approvaldomain.Payload{Note: note})
	if err != nil {
		return nil, err
	}

	req := res.Entity.(*domain.Request)
	return &TransitionDTO{
		RequestID:   req.RequestID,
		Status:      string(req.Status),
		AuditID:     res.AuditID,
		Notified:    res.Notified,
		NotifyError: res.NotifyError,
	}, nil
}

// Get 按业务 ID 查询请求
func (s *RequestService) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	req, err := s.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %s not found", requestID)
	}
	return toRequestDTO(req), nil
}

// List 按状态分页查询
func (s *RequestService) List(ctx context.Context, status string, page, pageSize int) (*RequestListDTO, error) {
	pagination := utils.NewPagination(page, pageSize, 0)

	reqs, total, err := s.repo.List(ctx, approvaldomain.State(status), pagination)
	if err != nil {
		return nil, err
	}

	items := make([]*RequestDTO, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, toRequestDTO(r))
	}

	return &RequestListDTO{
		Items:      items,
		Pagination: utils.NewPagination(page, pageSize, total),
	}, nil
}
