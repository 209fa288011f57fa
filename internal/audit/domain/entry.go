// Package domain 审计日志的领域模型
package domain

import (
	"gorm.io/gorm"
)

// Severity 审计条目严重级别，不落库，由 action 确定性推导
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// 已知的审计动作词汇
const (
	ActionApproved          = "approved"
	ActionRejected          = "rejected"
	ActionRequestedMoreInfo = "requested_more_info"
	ActionNameSelected      = "name_selected"
)

// 资源类型展示名
const (
	ResourceVerificationRequest = "Verification Request"
	ResourceUserAction          = "User Action"
)

// AuditEntry 审计条目。只追加，创建后不再修改或删除。
// 每次状态迁移在同一原子单元内恰好写入一条。
type AuditEntry struct {
	gorm.Model
	// EntryID 业务标识
	EntryID string `gorm:"column:entry_id;type:varchar(32);uniqueIndex;not null" json:"entry_id"`
	// ActorID 执行动作的管理员用户 ID
	ActorID string `gorm:"column:actor_id;type:varchar(64);index;not null" json:"actor_id"`
	// SubjectID 受影响的用户 ID
	SubjectID string `gorm:"column:subject_id;type:varchar(64);index;not null" json:"subject_id"`
	// RelatedRequestID 关联的请求业务 ID，可为空
	RelatedRequestID string `gorm:"column:related_request_id;type:varchar(64);index" json:"related_request_id,omitempty"`
	// Action 动作词汇
	Action string `gorm:"column:action;type:varchar(50);index;not null" json:"action"`
	// Note 管理员备注
	Note string `gorm:"column:note;type:text" json:"note,omitempty"`
}

// TableName 指定表名
func (AuditEntry) TableName() string {
	return "audit_entries"
}

// DeriveSeverity 从动作词汇推导严重级别。纯函数，不依赖任何存储状态。
func DeriveSeverity(action string) Severity {
	switch action {
	case ActionApproved, ActionRejected:
		return SeverityHigh
	case ActionRequestedMoreInfo, ActionNameSelected:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ResourceType 按是否关联请求对条目做资源分类。纯函数。
func ResourceType(e *AuditEntry) string {
	if e.RelatedRequestID != "" {
		return ResourceVerificationRequest
	}
	return ResourceUserAction
}
