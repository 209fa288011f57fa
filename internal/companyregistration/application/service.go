// Package application 公司注册申请的应用服务
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/wyfcoding/investplatform/internal/approval"
	approvaldomain "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/internal/companyregistration/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RegistrationService 注册申请服务：提交、名称选定、审批与查询
type RegistrationService struct {
	engine      *approval.Engine
	def         approvaldomain.Definition
	repo        domain.RegistrationRepository
	companyRepo domain.CompanyRepository
	idgen       *utils.SnowflakeID
}

// NewRegistrationService 创建注册申请服务
func NewRegistrationService(engine *approval.Engine, repo domain.RegistrationRepository, companyRepo domain.CompanyRepository, idgen *utils.SnowflakeID) *RegistrationService {
	return &RegistrationService{
		engine:      engine,
		def:         domain.NewWorkflowDefinition(idgen),
		repo:        repo,
		companyRepo: companyRepo,
		idgen:       idgen,
	}
}

// Submit 提交注册申请，初始状态 pending
func (s *RegistrationService) Submit(ctx context.Context, cmd SubmitRegistrationCommand) (*RegistrationDTO, error) {
	if cmd.SubmitterID == "" {
		return nil, fmt.Errorf("submitter id is required")
	}
	if len(cmd.CandidateNames) == 0 {
		return nil, fmt.Errorf("at least one candidate name is required")
	}
	for _, name := range cmd.CandidateNames {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("candidate names must not be empty")
		}
	}
	if cmd.Jurisdiction == "" || cmd.ContactEmail == "" {
		return nil, fmt.Errorf("jurisdiction and contact email are required")
	}

	req := &domain.RegistrationRequest{
		RegistrationID: s.idgen.GenerateWithPrefix("reg"),
		SubmitterID:    cmd.SubmitterID,
		CandidateNames: cmd.CandidateNames,
		Jurisdiction:   cmd.Jurisdiction,
		BusinessType:   cmd.BusinessType,
		ContactEmail:   cmd.ContactEmail,
		Status:         domain.StatusPending,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create registration request: %w", err)
	}

	logger.Info(ctx, "company registration submitted",
		"registration_id", req.RegistrationID,
		"jurisdiction", req.Jurisdiction,
		"candidates", len(req.CandidateNames),
	)

	return toRegistrationDTO(req), nil
}

// SelectName 选定公司名称：pending → name_selected
func (s *RegistrationService) SelectName(ctx context.Context, registrationID, actorID, selectedName, note string) (*TransitionDTO, error) {
	payload := approvaldomain.Payload{
		Note:   note,
		Fields: map[string]string{domain.FieldSelectedName: selectedName},
	}
	return s.transition(ctx, registrationID, actorID, domain.ActionSelectName, payload)
}

// Approve 批准注册：name_selected → completed，
// 并在同一原子单元内创建 RegisteredCompany
func (s *RegistrationService) Approve(ctx context.Context, registrationID, actorID, registrationNumber, incorporationDate, note string) (*TransitionDTO, error) {
	payload := approvaldomain.Payload{
		Note: note,
		Fields: map[string]string{
			domain.FieldRegistrationNumber: registrationNumber,
			domain.FieldIncorporationDate:  incorporationDate,
		},
	}
	return s.transition(ctx, registrationID, actorID, approvaldomain.ActionApprove, payload)
}

// Reject 驳回申请：pending/name_selected → rejected
func (s *RegistrationService) Reject(ctx context.Context, registrationID, actorID, note string) (*TransitionDTO, error) {
	return s.transition(ctx, registrationID, actorID, approvaldomain.ActionReject, approvaldomain.Payload{Note: note})
}

func (s *RegistrationService) transition(ctx context.Context, registrationID, actorID string, action approvaldomain.Action, payload approvaldomain.Payload) (*TransitionDTO, error) {
	res, err := s.engine.Transition(ctx, s.def, registrationID, actorID, action, payload)
	if err != nil {
		return nil, err
	}

	req := res.Entity.(*domain.RegistrationRequest)
	return &TransitionDTO{
		RegistrationID: req.RegistrationID,
		Status:         string(req.Status),
		SelectedName:   req.SelectedName,
		AuditID:        res.AuditID,
		Notified:       res.Notified,
		NotifyError:    res.NotifyError,
	}, nil
}

// Get 按业务 ID 查询申请
func (s *RegistrationService) Get(ctx context.Context, registrationID string) (*RegistrationDTO, error) {
	req, err := s.repo.GetByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("registration request %s not found", registrationID)
	}
	return toRegistrationDTO(req), nil
}

// List 按状态分页查询
func (s *RegistrationService) List(ctx context.Context, status string, page, pageSize int) (*RegistrationListDTO, error) {
	pagination := utils.NewPagination(page, pageSize, 0)

	reqs, total, err := s.repo.List(ctx, approvaldomain.State(status), pagination)
	if err != nil {
		return nil, err
	}

	items := make([]*RegistrationDTO, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, toRegistrationDTO(r))
	}

	return &RegistrationListDTO{
		Items:      items,
		Pagination: utils.NewPagination(page, pageSize, total),
	}, nil
}

// GetCompany 按业务 ID 查询已注册公司
func (s *RegistrationService) GetCompany(ctx context.Context, companyID string) (*CompanyDTO, error) {
	company, err := s.companyRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %s not found", companyID)
	}
	return toCompanyDTO(company), nil
}

// ListCompaniesByOwner 按所有者查询已注册公司
func (s *RegistrationService) ListCompaniesByOwner(ctx context.Context, ownerID string) ([]*CompanyDTO, error) {
	companies, err := s.companyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*CompanyDTO, 0, len(companies))
	for _, c := range companies {
		dtos = append(dtos, toCompanyDTO(c))
	}
	return dtos, nil
}
