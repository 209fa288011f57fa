package domain

import (
	"errors"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
)

// 通知模板键
const (
	TemplateProcessing = "processing"
	TemplateRejected   = "rejected"
)

// WorkflowDefinition 资金请求接入工作流引擎的定义。
// pending --approve--> processing，pending --reject--> rejected；
// 其余状态对管理员动作终态。
type WorkflowDefinition struct{}

// NewWorkflowDefinition 创建资金请求工作流定义
func NewWorkflowDefinition() *WorkflowDefinition {
	return &WorkflowDefinition{}
}

// EntityType 实体类型标识
func (d *WorkflowDefinition) EntityType() string {
	return "request"
}

// Table 迁移表
func (d *WorkflowDefinition) Table() approval.Table {
	return approval.Table{
		{From: StatusPending, Action: approval.ActionApprove, To: StatusProcessing},
		{From: StatusPending, Action: approval.ActionReject, To: StatusRejected},
	}
}

// Load 在事务内按业务 ID 加载请求
func (d *WorkflowDefinition) Load(tx *gorm.DB, entityID string) (approval.Entity, error) {
	var req Request
	err := tx.Where("request_id = ?", entityID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidatePayload 资金请求的 approve/reject 均不要求额外字段
func (d *WorkflowDefinition) ValidatePayload(action approval.Action, p approval.Payload) error {
	return nil
}

// Apply 以状态守卫条件更新请求行。守卫未命中说明状态已被并发迁移抢先。
func (d *WorkflowDefinition) Apply(tx *gorm.DB, e approval.Entity, action approval.Action, next approval.State, p approval.Payload) (bool, error) {
	req := e.(*Request)

	updates := map[string]any{"status": string(next)}
	if p.Note != "" {
		updates["admin_note"] = p.Note
	}

	res := tx.Model(&Request{}).
		Where("request_id = ? AND status = ?", req.RequestID, string(req.Status)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	req.Status = next
	if p.Note != "" {
		req.AdminNote = p.Note
	}
	return true, nil
}

// Notification 返回迁移对应的通知指令
func (d *WorkflowDefinition) Notification(e approval.Entity, action approval.Action, next approval.State, p approval.Payload) *approval.Notice {
	req := e.(*Request)

	var template string
	switch action {
	case approval.ActionApprove:
		template = TemplateProcessing
	case approval.ActionReject:
		template = TemplateRejected
	default:
		return nil
	}

	return &approval.Notice{
		TemplateKey: template,
		To:          req.SubmitterEmail,
		Variables: map[string]string{
			"kind":     string(req.Kind),
			"amount":   req.Amount.String(),
			"currency": req.Currency,
			"status":   string(next),
			"note":     p.Note,
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
	}
	return string(action)
}
