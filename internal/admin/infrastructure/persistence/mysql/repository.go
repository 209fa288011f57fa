// Package mysql 管理端身份仓储的 gorm 实现
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/investplatform/internal/admin/domain"
	"github.com/wyfcoding/investplatform/pkg/db"
)

// AdminRepository 管理员仓储实现
type AdminRepository struct {
	db *db.DB
}

// NewAdminRepository 创建管理员仓储
func NewAdminRepository(database *db.DB) *AdminRepository {
	return &AdminRepository{db: database}
}

var _ domain.AdminRepository = (*AdminRepository)(nil)

// Create 创建管理员
func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetByUserID 按用户 ID 查询管理员；不存在时返回 (nil, nil)
func (r *AdminRepository) GetByUserID(ctx context.Context, userID string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// ProfileRepository 用户资料仓储实现
type ProfileRepository struct {
	db *db.DB
}

// NewProfileRepository 创建用户资料仓储
func NewProfileRepository(database *db.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

var _ domain.ProfileRepository = (*ProfileRepository)(nil)

// Upsert 按 user_id 新增或更新资料
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "email"}),
	}).Create(p).Error
}

// GetByUserID 按用户 ID 查询资料；不存在时返回 (nil, nil)
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
