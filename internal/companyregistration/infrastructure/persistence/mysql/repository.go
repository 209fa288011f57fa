// Package mysql 公司注册申请与已注册公司的 GORM 仓储实现
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/internal/companyregistration/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RegistrationRepository 基于 GORM 的注册申请仓储
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository 创建注册申请仓储
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create 创建申请
func (r *RegistrationRepository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByRegistrationID 按业务 ID 查询
func (r *RegistrationRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.RegistrationRequest, error) {
	var req domain.RegistrationRequest
	err := r.db.WithContext(ctx).Where("registration_id = ?", registrationID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List 按状态分页查询，最新在前
func (r *RegistrationRepository) List(ctx context.Context, status approval.State, page *utils.Pagination) ([]*domain.RegistrationRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.RegistrationRequest{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*domain.RegistrationRequest
	err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// CountByStatus 按状态分组计数
func (r *RegistrationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.RegistrationRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// CountByFolder 按文件夹分组计数（仅直接成员）
func (r *RegistrationRepository) CountByFolder(ctx context.Context) (map[string]int64, error) {
	type row struct {
		FolderID string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.RegistrationRequest{}).
		Select("folder_id, COUNT(*) AS count").
		Where("folder_id IS NOT NULL").
		Group("folder_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.FolderID] = rw.Count
	}
	return counts, nil
}

// ClearFolder 在事务内将指向该文件夹的成员记录置空
func (r *RegistrationRepository) ClearFolder(tx *gorm.DB, folderID string) error {
	return tx.Model(&domain.RegistrationRequest{}).
		Where("folder_id = ?", folderID).
		Update("folder_id", nil).Error
}

// CompanyRepository 基于 GORM 的已注册公司仓储
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 创建公司仓储
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// GetByCompanyID 按业务 ID 查询
func (r *CompanyRepository) GetByCompanyID(ctx context.Context, companyID string) (*domain.RegisteredCompany, error) {
	var company domain.RegisteredCompany
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByRegistrationNumber 按注册号查询
func (r *CompanyRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.RegisteredCompany, error) {
	var company domain.RegisteredCompany
	err := r.db.WithContext(ctx).Where("registration_number = ?", registrationNumber).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// ListByOwner 按所有者查询
func (r *CompanyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.RegisteredCompany, error) {
	var companies []*domain.RegisteredCompany
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&companies).Error
	return companies, err
}
