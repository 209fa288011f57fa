// Package domain 海外公司注册申请的领域模型
package domain

import (
	"time"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
)

// 注册申请状态。processing 预留给外部尽调流程，管理员迁移不进入该状态。
const (
	StatusPending      approval.State = "pending"
	StatusProcessing   approval.State = "processing"
	StatusNameSelected approval.State = "name_selected"
	StatusCompleted    approval.State = "completed"
	StatusRejected     approval.State = "rejected"
)

// Statuses 注册申请的完整状态枚举，分诊状态桶按此注册。
// processing 虽不由管理员迁移进入，计数仍须覆盖。
func Statuses() []string {
	return []string{
		string(StatusPending),
		string(StatusProcessing),
		string(StatusNameSelected),
		string(StatusCompleted),
		string(StatusRejected),
	}
}

// CompanyStatus 已注册公司的状态
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusInactive  CompanyStatus = "inactive"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// RegistrationRequest 公司注册申请实体。
// 不变式：selected_name 非空 当且仅当 status ∈ {name_selected, completed}，
// 且非空时必须是 candidate_names 的成员。
type RegistrationRequest struct {
	gorm.Model
	// RegistrationID 业务标识
	RegistrationID string `gorm:"column:registration_id;type:varchar(32);uniqueIndex;not null" json:"registration_id"`
	// SubmitterID 提交者用户 ID
	SubmitterID string `gorm:"column:submitter_id;type:varchar(64);index;not null" json:"submitter_id"`
	// CandidateNames 候选名称列表，有序，至少一个
	CandidateNames []string `gorm:"column:candidate_names;type:text;serializer:json" json:"candidate_names"`
	// Jurisdiction 注册司法辖区
	Jurisdiction string `gorm:"column:jurisdiction;type:varchar(100);not null" json:"jurisdiction"`
	// BusinessType 业务类型
	BusinessType string `gorm:"column:business_type;type:varchar(100)" json:"business_type"`
	// ContactEmail 联系邮箱
	ContactEmail string `gorm:"column:contact_email;type:varchar(100);not null" json:"contact_email"`
	// Status 当前状态
	Status approval.State `gorm:"column:status;type:varchar(20);index;not null;default:'pending'" json:"status"`
	// SelectedName 管理员选定的名称
	SelectedName string `gorm:"column:selected_name;type:varchar(200)" json:"selected_name,omitempty"`
	// AdminNote 管理员备注
	AdminNote string `gorm:"column:admin_note;type:text" json:"admin_note,omitempty"`
	// FolderID 分诊文件夹，可为空
	FolderID *string `gorm:"column:folder_id;type:varchar(32);index" json:"folder_id,omitempty"`
}

// TableName 指定表名
func (RegistrationRequest) TableName() string {
	return "company_registration_requests"
}

// BusinessID 实现工作流实体接口
func (r *RegistrationRequest) BusinessID() string {
	return r.RegistrationID
}

// Submitter 实现工作流实体接口
func (r *RegistrationRequest) Submitter() string {
	return r.SubmitterID
}

// CurrentStatus 实现工作流实体接口
func (r *RegistrationRequest) CurrentStatus() approval.State {
	return r.Status
}

// HasCandidate 检查名称是否在候选列表中
func (r *RegistrationRequest) HasCandidate(name string) bool {
	for _, c := range r.CandidateNames {
		if c == name {
			return true
		}
	}
	return false
}

// RegisteredCompany 已注册公司。注册事实不可变，
// 仅由注册申请的 approve 迁移创建，且恰好创建一次。
type RegisteredCompany struct {
	gorm.Model
	// CompanyID 业务标识
	CompanyID string `gorm:"column:company_id;type:varchar(32);uniqueIndex;not null" json:"company_id"`
	// OwnerID 所有者用户 ID
	OwnerID string `gorm:"column:owner_id;type:varchar(64);index;not null" json:"owner_id"`
	// CompanyName 公司名称（选定的候选名称）
	CompanyName string `gorm:"column:company_name;type:varchar(200);not null" json:"company_name"`
	// RegistrationNumber 注册号，全局唯一
	RegistrationNumber string `gorm:"column:registration_number;type:varchar(100);uniqueIndex;not null" json:"registration_number"`
	// IncorporationDate 注册成立日期
	IncorporationDate time.Time `gorm:"column:incorporation_date;type:date;not null" json:"incorporation_date"`
	// Jurisdiction 注册司法辖区
	Jurisdiction string `gorm:"column:jurisdiction;type:varchar(100);not null" json:"jurisdiction"`
	// Status 公司状态
	Status CompanyStatus `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	// ContactEmail 联系邮箱
	ContactEmail string `gorm:"column:contact_email;type:varchar(100)" json:"contact_email"`
	// ContactPhone 联系电话
	ContactPhone string `gorm:"column:contact_phone;type:varchar(50)" json:"contact_phone"`
}

// TableName 指定表名
func (RegisteredCompany) TableName() string {
	return "registered_companies"
}
