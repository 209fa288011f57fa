// Package mysql 分诊文件夹的 GORM 仓储实现
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/investplatform/internal/triage/domain"
)

// FolderRepository 基于 GORM 的文件夹仓储
type FolderRepository struct {
	db *gorm.DB
}

// NewFolderRepository 创建文件夹仓储
func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create 创建文件夹
func (r *FolderRepository) Create(ctx context.Context, folder *domain.FolderNode) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

// GetByFolderID 按业务 ID 查询
func (r *FolderRepository) GetByFolderID(ctx context.Context, folderID string) (*domain.FolderNode, error) {
	var folder domain.FolderNode
	err := r.db.WithContext(ctx).Where("folder_id = ?", folderID).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListAll 返回全部文件夹
func (r *FolderRepository) ListAll(ctx context.Context) ([]*domain.FolderNode, error) {
	var folders []*domain.FolderNode
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&folders).Error
	return folders, err
}

// DeleteTx 在事务内删除文件夹行
func (r *FolderRepository) DeleteTx(tx *gorm.DB, folderID string) error {
	return tx.Where("folder_id = ?", folderID).Delete(&domain.FolderNode{}).Error
}

// ClearParentTx 在事务内将指向该父文件夹的子文件夹提升为根
func (r *FolderRepository) ClearParentTx(tx *gorm.DB, parentID string) error {
	return tx.Model(&domain.FolderNode{}).Where("parent_id = ?", parentID).Update("parent_id", "").Error
}
