// Package mysql 通知记录仓储的 gorm 实现
package mysql

import (
	"context"
	"time"

	"github.com/wyfcoding/investplatform/internal/notification/domain"
	"github.com/wyfcoding/investplatform/pkg/db"
)

// NotificationRepository 通知记录仓储实现
type NotificationRepository struct {
	db *db.DB
}

// NewNotificationRepository 创建通知记录仓储
func NewNotificationRepository(database *db.DB) *NotificationRepository {
	return &NotificationRepository{db: database}
}

var _ domain.NotificationRepository = (*NotificationRepository)(nil)

// Save 保存通知记录
func (r *NotificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// MarkSent 标记通知已发送
func (r *NotificationRepository) MarkSent(ctx context.Context, notificationID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]any{
			"status":  string(domain.NotificationStatusSent),
			"sent_at": &now,
		}).Error
}

// MarkFailed 标记通知发送失败
func (r *NotificationRepository) MarkFailed(ctx context.Context, notificationID string, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]any{
			"status":        string(domain.NotificationStatusFailed),
			"error_message": reason,
		}).Error
}

// ListByTarget 按目标地址倒序列出通知记录
func (r *NotificationRepository) ListByTarget(ctx context.Context, target string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var items []*domain.Notification
	err := r.db.WithContext(ctx).
		Where("target = ?", target).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
