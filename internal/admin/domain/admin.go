// Package domain 管理端身份领域模型
package domain

import (
	"context"

	"gorm.io/gorm"
)

// 内置角色
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin 管理员账户
type Admin struct {
	gorm.Model
	// UserID 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null" json:"user_id"`
	// Username 登录名
	Username string `gorm:"column:username;type:varchar(50);uniqueIndex;not null" json:"username"`
	// Role 角色
	Role string `gorm:"column:role;type:varchar(30);not null;default:'admin'" json:"role"`
	// Active 是否启用；停用的管理员无法执行审批动作
	Active bool `gorm:"column:active;not null;default:true" json:"active"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// UserProfile 平台用户资料，用于审计展示名解析
type UserProfile struct {
	gorm.Model
	// UserID 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null" json:"user_id"`
	// DisplayName 展示名
	DisplayName string `gorm:"column:display_name;type:varchar(100);not null" json:"display_name"`
	// Email 邮箱
	Email string `gorm:"column:email;type:varchar(100);index" json:"email"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}

// AdminRepository 管理员仓储
type AdminRepository interface {
	Create(ctx context.Context, a *Admin) error
	GetByUserID(ctx context.Context, userID string) (*Admin, error)
}

// ProfileRepository 用户资料仓储
type ProfileRepository interface {
	Upsert(ctx context.Context, p *UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)
}
