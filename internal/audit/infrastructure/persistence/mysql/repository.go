// Package mysql 审计条目的 GORM 仓储实现
package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// EntryRepository 基于 GORM 的审计条目仓储
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository 创建审计条目仓储
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// List 按过滤条件分页查询，created_at 倒序。
// severity 不落库，过滤时展开为对应的动作词汇集合。
func (r *EntryRepository) List(ctx context.Context, filter domain.Filter, page *utils.Pagination) ([]*domain.AuditEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.AuditEntry{})

	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		query = query.Where(
			"action LIKE ? OR note LIKE ? OR actor_id LIKE ? OR subject_id LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Severity != "" {
		switch filter.Severity {
		case domain.SeverityHigh:
			query = query.Where("action IN ?", []string{domain.ActionApproved, domain.ActionRejected})
		case domain.SeverityMedium:
			query = query.Where("action IN ?", []string{domain.ActionRequestedMoreInfo, domain.ActionNameSelected})
		case domain.SeverityLow:
			query = query.Where("action NOT IN ?", []string{
				domain.ActionApproved, domain.ActionRejected,
				domain.ActionRequestedMoreInfo, domain.ActionNameSelected,
			})
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*domain.AuditEntry
	err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetByEntryID 按业务 ID 查询
func (r *EntryRepository) GetByEntryID(ctx context.Context, entryID string) (*domain.AuditEntry, error) {
	var entry domain.AuditEntry
	err := r.db.WithContext(ctx).Where("entry_id = ?", entryID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
