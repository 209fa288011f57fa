// Package domain 资金请求（充值/提现）的领域模型
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
)

// Kind 请求类型
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// 资金请求状态。离开 pending 后不可再回到 pending；
// processing → completed 属于外部清算流程，不在管理员动作范围内。
const (
	StatusPending    approval.State = "pending"
	StatusProcessing approval.State = "processing"
	StatusCompleted  approval.State = "completed"
	StatusRejected   approval.State = "rejected"
)

// Request 资金请求实体。状态只能由工作流引擎变更，记录永不物理删除。
type Request struct {
	gorm.Model
	// RequestID 业务标识
	RequestID string `gorm:"column:request_id;type:varchar(32);uniqueIndex;not null" json:"request_id"`
	// SubmitterID 提交者用户 ID
	SubmitterID string `gorm:"column:submitter_id;type:varchar(64);index;not null" json:"submitter_id"`
	// SubmitterEmail 提交者联系邮箱，通知派发使用
	SubmitterEmail string `gorm:"column:submitter_email;type:varchar(100);not null" json:"submitter_email"`
	// Kind 请求类型：deposit / withdrawal
	Kind Kind `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	// Amount 金额，必须大于 0
	Amount decimal.Decimal `gorm:"column:amount;type:decimal(32,8);not null" json:"amount"`
	// Currency ISO 货币代码
	Currency string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	// Status 当前状态
	Status approval.State `gorm:"column:status;type:varchar(20);index;not null;default:'pending'" json:"status"`
	// AdminNote 管理员备注，仅在离开 pending 的迁移中写入
	AdminNote string `gorm:"column:admin_note;type:text" json:"admin_note,omitempty"`
	// FolderID 分诊文件夹，可为空
	FolderID *string `gorm:"column:folder_id;type:varchar(32);index" json:"folder_id,omitempty"`
}

// TableName 指定表名
func (Request) TableName() string {
	return "requests"
}

// BusinessID 实现工作流实体接口
func (r *Request) BusinessID() string {
	return r.RequestID
}

// Submitter 实现工作流实体接口
func (r *Request) Submitter() string {
	return r.SubmitterID
}

// CurrentStatus 实现工作流实体接口
func (r *Request) CurrentStatus() approval.State {
	return r.Status
}

// ValidKind 检查请求类型是否合法
func ValidKind(k Kind) bool {
	return k == KindDeposit || k == KindWithdrawal
}
