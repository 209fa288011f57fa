package sender

import (
	"context"

	"github.com/wyfcoding/investplatform/pkg/mq"
)

// outboundMessage 投递到下游通知网关的消息体
type outboundMessage struct {
	Target  string `json:"target"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// KafkaSender 将通知投递到 Kafka，由下游网关实际发送
type KafkaSender struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaSender 创建 Kafka 通道发送器
func NewKafkaSender(producer *mq.KafkaProducer, topic string) *KafkaSender {
	return &KafkaSender{producer: producer, topic: topic}
}

// Send 按 target 作为分区键投递
func (s *KafkaSender) Send(ctx context.Context, target, subject, content string) error {
	return s.producer.SendMessage(ctx, s.topic, target, outboundMessage{
		Target:  target,
		Subject: subject,
		Content: content,
	})
}
