package domain

import (
	"context"
	"time"
)

// AuditRecordedEvent 审计条目写入事件。
// 工作流引擎在原子单元提交后发布，审计视图订阅以刷新缓存。
type AuditRecordedEvent struct {
	EntryID          string    `json:"entry_id"`
	ActorID          string    `json:"actor_id"`
	SubjectID        string    `json:"subject_id"`
	RelatedRequestID string    `json:"related_request_id,omitempty"`
	Action           string    `json:"action"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventPublisher 审计事件发布者接口
type EventPublisher interface {
	// PublishAuditRecorded 发布审计写入事件，尽力而为
	PublishAuditRecorded(ctx context.Context, event AuditRecordedEvent) error
}
