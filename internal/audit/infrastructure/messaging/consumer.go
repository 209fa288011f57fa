package messaging

import (
	"context"
	"encoding/json"

	"github.com/wyfcoding/investplatform/internal/audit/application"
	"github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/mq"
)

// EventConsumer 消费审计写入事件并刷新读取器缓存。
// 订阅机制不可用时读取器自行退化为纯查询，不影响正确性。
type EventConsumer struct {
	consumer *mq.KafkaConsumer
	reader   *application.TrailReader
}

// NewEventConsumer 创建审计事件消费者
func NewEventConsumer(consumer *mq.KafkaConsumer, reader *application.TrailReader) *EventConsumer {
	return &EventConsumer{consumer: consumer, reader: reader}
}

// Run 运行消费循环，直到 ctx 取消
func (c *EventConsumer) Run(ctx context.Context) error {
	logger.Info(ctx, "audit event consumer started")
	return c.consumer.Run(ctx, func(ctx context.Context, key, value []byte) error {
		var event domain.AuditRecordedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			logger.Warn(ctx, "malformed audit event skipped", "error", err)
			return nil
		}
		c.reader.OnAuditRecorded(ctx, event)
		return nil
	})
}

// Close 关闭底层消费者
func (c *EventConsumer) Close() error {
	return c.consumer.Close()
}
