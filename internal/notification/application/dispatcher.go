// Package application 通知服务应用层
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/investplatform/internal/notification/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/metrics"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// Dispatcher 渲染模板、落库通知记录并通过投递通道发送。
// 投递失败会标记记录为 FAILED 并返回错误，由上游决定如何上报。
type Dispatcher struct {
	repo      domain.NotificationRepository
	sender    domain.Sender
	templates *domain.Registry
	metrics   *metrics.Metrics
	idgen     *utils.SnowflakeID
}

// NewDispatcher 创建通知分发器
func NewDispatcher(repo domain.NotificationRepository, s domain.Sender, m *metrics.Metrics, idgen *utils.SnowflakeID) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		sender:    s,
		templates: domain.NewRegistry(),
		metrics:   m,
		idgen:     idgen,
	}
}

// Dispatch 发送一条模板通知
func (d *Dispatcher) Dispatch(ctx context.Context, templateKey, to string, variables map[string]string) error {
	subject, content, err := d.templates.Render(templateKey, variables)
	if err != nil {
		d.observe("render_failed")
		return err
	}

	record := &domain.Notification{
		NotificationID: d.idgen.GenerateWithPrefix("ntf"),
		TemplateKey:    templateKey,
		Target:         to,
		Subject:        subject,
		Content:        content,
		Status:         domain.NotificationStatusPending,
	}
	if err := d.repo.Save(ctx, record); err != nil {
		d.observe("persist_failed")
		return fmt.Errorf("failed to save notification record: %w", err)
	}

	if err := d.sender.Send(ctx, to, subject, content); err != nil {
		if markErr := d.repo.MarkFailed(ctx, record.NotificationID, err.Error()); markErr != nil {
			logger.Error(ctx, "Failed to mark notification as failed",
				"notification_id", record.NotificationID,
				"error", markErr,
			)
		}
		d.observe("send_failed")
		return err
	}

	if err := d.repo.MarkSent(ctx, record.NotificationID); err != nil {
		logger.Error(ctx, "Failed to mark notification as sent",
			"notification_id", record.NotificationID,
			"error", err,
		)
	}
	d.observe("sent")

	logger.Info(ctx, "Notification dispatched",
		"notification_id", record.NotificationID,
		"template", templateKey,
		"target", to,
	)
	return nil
}

// History 查询某目标最近的通知记录
func (d *Dispatcher) History(ctx context.Context, target string, limit int) ([]*domain.Notification, error) {
	return d.repo.ListByTarget(ctx, target, limit)
}

func (d *Dispatcher) observe(result string) {
	if d.metrics != nil {
		d.metrics.NotificationsTotal.WithLabelValues(result).Inc()
	}
}
