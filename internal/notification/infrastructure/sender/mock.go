package sender

import (
	"context"
	"sync"
	"time"
)

// SentRecord 一次投递调用的记录
type SentRecord struct {
	Target  string
	Subject string
	Content string
}

// MockSender 记录所有投递调用，用于开发环境与测试
type MockSender struct {
	mu    sync.Mutex
	sent  []SentRecord
	Err   error
	Delay time.Duration
}

// NewMockSender 创建 mock 发送器
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send 记录调用；按配置返回 Err 或延迟
func (s *MockSender) Send(ctx context.Context, target, subject, content string) error {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, SentRecord{Target: target, Subject: subject, Content: content})
	return nil
}

// Sent 返回已记录投递的副本
func (s *MockSender) Sent() []SentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentRecord, len(s.sent))
	copy(out, s.sent)
	return out
}
