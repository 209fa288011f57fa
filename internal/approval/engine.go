// Package approval 实现通用的审批工作流引擎。
// 引擎是状态变更的唯一入口：校验管理员能力、迁移表合法性与字段完整性，
// 在单一事务内持久化新状态与审计条目，随后尽力而为地派发通知。
package approval

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/investplatform/internal/approval/domain"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/db"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/metrics"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// AuthService 管理员能力检查（外部协作方）
type AuthService interface {
	IsAdmin(ctx context.Context, actorID string) (bool, error)
}

// Notifier 通知派发能力（外部协作方），调用方不要求同步成功
type Notifier interface {
	Dispatch(ctx context.Context, templateKey, to string, variables map[string]string) error
}

// Engine 工作流引擎
type Engine struct {
	db            *db.DB
	auth          AuthService
	notifier      Notifier
	publisher     auditdomain.EventPublisher
	metrics       *metrics.Metrics
	idgen         *utils.SnowflakeID
	notifyTimeout time.Duration
}

// Option 引擎可选配置
type Option func(*Engine)

// WithNotifier 配置通知派发器
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithEventPublisher 配置审计事件发布者
func WithEventPublisher(p auditdomain.EventPublisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithMetrics 配置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithNotifyTimeout 配置通知等待窗口
func WithNotifyTimeout(d time.Duration) Option {
	return func(e *Engine) { e.notifyTimeout = d }
}

// NewEngine 创建工作流引擎。所有协作方都显式注入，不依赖环境单例。
func NewEngine(database *db.DB, auth AuthService, idgen *utils.SnowflakeID, opts ...Option) *Engine {
	e := &Engine{
		db:            database,
		auth:          auth,
		idgen:         idgen,
		notifyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result 迁移结果。Notified/NotifyError 表达通知的软失败：
// 迁移本身已生效，仅投递失败时 Notified=false 且 NotifyError 非空。
type Result struct {
	Entity      domain.Entity
	AuditID     string
	Notified    bool
	NotifyError string
}

// Transition 执行一次状态迁移。校验按以下顺序进行：
// 管理员能力 → 实体存在 → 迁移表合法性 → 字段完整性；
// 随后在单一事务内应用迁移并追加审计条目，提交后异步派发通知。
func (e *Engine) Transition(ctx context.Context, def domain.Definition, entityID, actorID string, action domain.Action, payload domain.Payload) (*Result, error) {
	start := time.Now()

	res, err := e.transition(ctx, def, entityID, actorID, action, payload)

	if e.metrics != nil {
		result := "ok"
		if err != nil {
			var we *domain.WorkflowError
			if errors.As(err, &we) {
				result = we.Code
			} else {
				result = "error"
			}
		}
		e.metrics.ObserveTransition(def.EntityType(), string(action), result, time.Since(start))
	}

	return res, err
}

func (e *Engine) transition(ctx context.Context, def domain.Definition, entityID, actorID string, action domain.Action, payload domain.Payload) (*Result, error) {
	ok, err := e.auth.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, domain.ErrPersistence.WithCause(err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		entity domain.Entity
		entry  *auditdomain.AuditEntry
		next   domain.State
	)

	txErr := e.db.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		entity, err = def.Load(tx, entityID)
		if err != nil {
			return domain.ErrPersistence.WithCause(err)
		}
		if entity == nil {
			return domain.ErrNotFound
		}

		current := entity.CurrentStatus()
		var legal bool
		next, legal = def.Table().Next(current, action)
		if !legal {
			return domain.ErrInvalidTransition
		}

		if err := def.ValidatePayload(action, payload); err != nil {
			return err
		}

		applied, err := def.Apply(tx, entity, action, next, payload)
		if err != nil {
			var we *domain.WorkflowError
			if errors.As(err, &we) {
				return err
			}
			return domain.ErrPersistence.WithCause(err)
		}
		if !applied {
			// 状态守卫未命中：另一管理员已抢先迁移
			return domain.ErrInvalidTransition
		}

		entry = &auditdomain.AuditEntry{
			EntryID:          e.idgen.GenerateWithPrefix("aud"),
			ActorID:          actorID,
			SubjectID:        entity.Submitter(),
			RelatedRequestID: entity.BusinessID(),
			Action:           def.AuditAction(action),
			Note:             payload.Note,
		}
		if err := tx.Create(entry).Error; err != nil {
			return domain.ErrPersistence.WithCause(err)
		}

		return nil
	})
	if txErr != nil {
		var we *domain.WorkflowError
		if errors.As(txErr, &we) {
			return nil, txErr
		}
		return nil, domain.ErrPersistence.WithCause(txErr)
	}

	logger.Info(ctx, "workflow transition committed",
		"entity", def.EntityType(),
		"entity_id", entityID,
		"actor", actorID,
		"action", string(action),
		"next_status", string(next),
		"audit_id", entry.EntryID,
	)
	if e.metrics != nil {
		e.metrics.AuditEntriesTotal.Inc()
	}

	e.publishAuditEvent(ctx, entry)

	result := &Result{Entity: entity, AuditID: entry.EntryID}
	e.notify(ctx, def, entity, action, next, payload, result)

	return result, nil
}

// publishAuditEvent 尽力而为地发布审计事件，失败只记录日志
func (e *Engine) publishAuditEvent(ctx context.Context, entry *auditdomain.AuditEntry) {
	if e.publisher == nil {
		return
	}
	event := auditdomain.AuditRecordedEvent{
		EntryID:          entry.EntryID,
		ActorID:          entry.ActorID,
		SubjectID:        entry.SubjectID,
		RelatedRequestID: entry.RelatedRequestID,
		Action:           entry.Action,
		CreatedAt:        entry.CreatedAt,
	}
	if err := e.publisher.PublishAuditRecorded(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish audit event", "entry_id", entry.EntryID, "error", err)
	}
}

// notify 在有限的等待窗口内异步派发通知。
// 超时或失败不回滚迁移，仅作为软失败回填到 result。
func (e *Engine) notify(ctx context.Context, def domain.Definition, entity domain.Entity, action domain.Action, next domain.State, payload domain.Payload, result *Result) {
	notice := def.Notification(entity, action, next, payload)
	if notice == nil {
		// 该迁移不要求通知
		result.Notified = true
		return
	}
	if e.notifier == nil {
		result.NotifyError = domain.ErrNotify.WithMessage("no notification dispatcher configured").Error()
		return
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.notifyTimeout)
	done := make(chan error, 1)
	go func() {
		defer cancel()
		done <- e.notifier.Dispatch(nctx, notice.TemplateKey, notice.To, notice.Variables)
	}()

	select {
	case err := <-done:
		if err != nil {
			result.NotifyError = domain.ErrNotify.WithCause(err).Error()
			logger.Warn(ctx, "notification dispatch failed",
				"entity_id", entity.BusinessID(),
				"template", notice.TemplateKey,
				"error", err,
			)
		} else {
			result.Notified = true
		}
	case <-nctx.Done():
		// 放弃等待，派发协程自行结束
		result.NotifyError = domain.ErrNotify.WithMessage("notification dispatch timed out").Error()
		logger.Warn(ctx, "notification dispatch timed out",
			"entity_id", entity.BusinessID(),
			"template", notice.TemplateKey,
		)
	}
}
