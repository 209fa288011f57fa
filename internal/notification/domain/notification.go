// Package domain 通知服务的领域模型
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NotificationStatus 通知状态
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification 通知记录实体
type Notification struct {
	gorm.Model
	// NotificationID 通知 ID
	NotificationID string `gorm:"column:notification_id;type:varchar(64);uniqueIndex;not null" json:"notification_id"`
	// TemplateKey 模板键
	TemplateKey string `gorm:"column:template_key;type:varchar(50);index;not null" json:"template_key"`
	// Target 通知目标（邮箱地址）
	Target string `gorm:"column:target;type:varchar(100);not null" json:"target"`
	// Subject 渲染后的主题
	Subject string `gorm:"column:subject;type:varchar(200)" json:"subject"`
	// Content 渲染后的内容
	Content string `gorm:"column:content;type:text" json:"content"`
	// Status 通知状态
	Status NotificationStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	// ErrorMessage 失败原因
	ErrorMessage string `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	// SentAt 发送时间
	SentAt *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// NotificationRepository 通知记录仓储
type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	MarkSent(ctx context.Context, notificationID string) error
	MarkFailed(ctx context.Context, notificationID string, reason string) error
	ListByTarget(ctx context.Context, target string, limit int) ([]*Notification, error)
}

// Sender 实际投递通道
type Sender interface {
	Send(ctx context.Context, target, subject, content string) error
}
