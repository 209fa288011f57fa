// Package messaging 审计事件的 Kafka 发布与订阅
package messaging

import (
	"context"

	"github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/mq"
)

// KafkaEventPublisher 将审计写入事件发布到 Kafka
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建审计事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// PublishAuditRecorded 发布审计写入事件。
// 使用条目 ID 做 Key 保证分区内的时序性。
func (p *KafkaEventPublisher) PublishAuditRecorded(ctx context.Context, event domain.AuditRecordedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.EntryID, event)
}
