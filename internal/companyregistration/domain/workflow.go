package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// ActionSelectName 管理员选定公司名称
const ActionSelectName approval.Action = "select_name"

// 动作字段键
const (
	FieldSelectedName       = "selected_name"
	FieldRegistrationNumber = "registration_number"
	FieldIncorporationDate  = "incorporation_date"
)

// IncorporationDateLayout 注册成立日期的载荷格式
const IncorporationDateLayout = "2006-01-02"

// WorkflowDefinition 注册申请接入工作流引擎的定义。
// approve（name_selected → completed）在同一原子单元内创建 RegisteredCompany。
type WorkflowDefinition struct {
	idgen *utils.SnowflakeID
}

// NewWorkflowDefinition 创建注册申请工作流定义
func NewWorkflowDefinition(idgen *utils.SnowflakeID) *WorkflowDefinition {
	return &WorkflowDefinition{idgen: idgen}
}

// EntityType 实体类型标识
func (d *WorkflowDefinition) EntityType() string {
	return "company_registration"
}

// Table 迁移表
func (d *WorkflowDefinition) Table() approval.Table {
	return approval.Table{
		{From: StatusPending, Action: ActionSelectName, To: StatusNameSelected},
		{From: StatusPending, Action: approval.ActionReject, To: StatusRejected},
		{From: StatusNameSelected, Action: approval.ActionApprove, To: StatusCompleted},
		{From: StatusNameSelected, Action: approval.ActionReject, To: StatusRejected},
	}
}

// Load 在事务内按业务 ID 加载申请
func (d *WorkflowDefinition) Load(tx *gorm.DB, entityID string) (approval.Entity, error) {
	var req RegistrationRequest
	err := tx.Where("registration_id = ?", entityID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidatePayload 校验动作所需字段
func (d *WorkflowDefinition) ValidatePayload(action approval.Action, p approval.Payload) error {
	switch action {
	case ActionSelectName:
		if p.Field(FieldSelectedName) == "" {
			return approval.ErrIncompletePayload.WithMessage("selected_name is required")
		}
	case approval.ActionApprove:
		if p.Field(FieldRegistrationNumber) == "" {
			return approval.ErrIncompletePayload.WithMessage("registration_number is required")
		}
		if _, err := time.Parse(IncorporationDateLayout, p.Field(FieldIncorporationDate)); err != nil {
			return approval.ErrIncompletePayload.WithMessage("incorporation_date must be a valid date (YYYY-MM-DD)")
		}
	}
	return nil
}

// Apply 应用迁移。reject 会清空 selected_name 以维持不变式；
// approve 在状态守卫更新命中后创建 RegisteredCompany。
func (d *WorkflowDefinition) Apply(tx *gorm.DB, e approval.Entity, action approval.Action, next approval.State, p approval.Payload) (bool, error) {
	req := e.(*RegistrationRequest)

	updates := map[string]any{"status": string(next)}
	if p.Note != "" {
		updates["admin_note"] = p.Note
	}

	switch action {
	case ActionSelectName:
		name := p.Field(FieldSelectedName)
		if !req.HasCandidate(name) {
			return false, approval.ErrIncompletePayload.WithMessage("selected_name must be one of the candidate names")
		}
		updates["selected_name"] = name
	case approval.ActionReject:
		updates["selected_name"] = ""
	}

	res := tx.Model(&RegistrationRequest{}).
		Where("registration_id = ? AND status = ?", req.RegistrationID, string(req.Status)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if action == approval.ActionApprove {
		incorporated, _ := time.Parse(IncorporationDateLayout, p.Field(FieldIncorporationDate))
		company := &RegisteredCompany{
			CompanyID:          d.idgen.GenerateWithPrefix("com"),
			OwnerID:            req.SubmitterID,
			CompanyName:        req.SelectedName,
			RegistrationNumber: p.Field(FieldRegistrationNumber),
			IncorporationDate:  incorporated,
			Jurisdiction:       req.Jurisdiction,
			Status:             CompanyStatusActive,
			ContactEmail:       req.ContactEmail,
		}
		if err := tx.Create(company).Error; err != nil {
			return false, err
		}
	}

	req.Status = next
	if p.Note != "" {
		req.AdminNote = p.Note
	}
	switch action {
	case ActionSelectName:
		req.SelectedName = p.Field(FieldSelectedName)
	case approval.ActionReject:
		req.SelectedName = ""
	}
	return true, nil
}

// 注册申请通知模板键
const (
	TemplateNameSelected = "registration_name_selected"
	TemplateCompleted    = "registration_completed"
	TemplateRejected     = "registration_rejected"
)

// Notification 向申请人联系邮箱发送迁移结果通知
func (d *WorkflowDefinition) Notification(e approval.Entity, action approval.Action, next approval.State, p approval.Payload) *approval.Notice {
	req := e.(*RegistrationRequest)
	if req.ContactEmail == "" {
		return nil
	}

	var template string
	switch action {
	case ActionSelectName:
		template = TemplateNameSelected
	case approval.ActionApprove:
		template = TemplateCompleted
	case approval.ActionReject:
		template = TemplateRejected
	default:
		return nil
	}

	return &approval.Notice{
		TemplateKey: template,
		To:          req.ContactEmail,
		Variables: map[string]string{
			"selected_name":       req.SelectedName,
			"jurisdiction":        req.Jurisdiction,
			"registration_number": p.Field(FieldRegistrationNumber),
			"note":                p.Note,
		},
	}
}

// AuditAction 迁移写入审计日志的动作词汇
func (d *WorkflowDefinition) AuditAction(action approval.Action) string {
	switch action {
	case approval.ActionApprove:
		return auditdomain.ActionApproved
	case approval.ActionReject:
		return auditdomain.ActionRejected
	case ActionSelectName:
		return auditdomain.ActionNameSelected
	}
	return string(action)
}
