// Package mysql 资金请求的 GORM 仓储实现
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/internal/request/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RequestRepository 基于 GORM 的资金请求仓储
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建资金请求仓储
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create 创建请求
func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByRequestID 按业务 ID 查询
func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	var req domain.Request
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List 按状态分页查询，最新在前
func (r *RequestRepository) List(ctx context.Context, status approval.State, page *utils.Pagination) ([]*domain.Request, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Request{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*domain.Request
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
func (r *RequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Request{}).
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
func (r *RequestRepository) CountByFolder(ctx context.Context) (map[string]int64, error) {
	type row struct {
		FolderID string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Request{}).
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
func (r *RequestRepository) ClearFolder(tx *gorm.DB, folderID string) error {
	return tx.Model(&domain.Request{}).
		Where("folder_id = ?", folderID).
		Update("folder_id", nil).Error
}
