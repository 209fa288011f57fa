package application

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/wyfcoding/investplatform/internal/notification/domain"
	notifymysql "github.com/wyfcoding/investplatform/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/investplatform/internal/notification/infrastructure/sender"
	"github.com/wyfcoding/investplatform/pkg/db"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

func newDispatcher(t *testing.T) (*db.DB, *Dispatcher, *sender.MockSender) {
	t.Helper()

	database, err := db.Init(db.Config{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.AutoMigrate(&domain.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mock := sender.NewMockSender()
	d := NewDispatcher(notifymysql.NewNotificationRepository(database), mock, nil, utils.NewSnowflakeID(4))
	return database, d, mock
}

func TestDispatchRendersAndRecords(t *testing.T) {
	database, d, mock := newDispatcher(t)
	ctx := context.Background()

	err := d.Dispatch(ctx, "rejected", "user@example.com", map[string]string{
		"kind":     "withdrawal",
		"amount":   "250",
		"currency": "EUR",
		"note":     "limit exceeded",
	})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sent))
	}
	if sent[0].Subject != "Your withdrawal request was rejected" {
		t.Fatalf("unexpected subject %q", sent[0].Subject)
	}
	if !strings.Contains(sent[0].Content, "250 EUR") || !strings.Contains(sent[0].Content, "limit exceeded") {
		t.Fatalf("variables not substituted: %q", sent[0].Content)
	}

	var record domain.Notification
	if err := database.First(&record).Error; err != nil {
		t.Fatalf("record not found: %v", err)
	}
	if record.Status != domain.NotificationStatusSent {
		t.Fatalf("expected SENT, got %s", record.Status)
	}
	if record.SentAt == nil {
		t.Fatal("expected sent_at to be set")
	}
	if record.TemplateKey != "rejected" || record.Target != "user@example.com" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestDispatchUnknownTemplate(t *testing.T) {
	database, d, mock := newDispatcher(t)

	if err := d.Dispatch(context.Background(), "nonexistent", "user@example.com", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if len(mock.Sent()) != 0 {
		t.Fatal("nothing should have been sent")
	}

	var count int64
	database.Model(&domain.Notification{}).Count(&count)
	if count != 0 {
		t.Fatalf("no record should be written, got %d", count)
	}
}

func TestDispatchMarksFailure(t *testing.T) {
	database, d, mock := newDispatcher(t)
	mock.Err = fmt.Errorf("connection refused")

	err := d.Dispatch(context.Background(), "processing", "user@example.com", map[string]string{"kind": "deposit"})
	if err == nil {
		t.Fatal("expected send error")
	}

	var record domain.Notification
	if err := database.First(&record).Error; err != nil {
		t.Fatalf("record not found: %v", err)
	}
	if record.Status != domain.NotificationStatusFailed {
		t.Fatalf("expected FAILED, got %s", record.Status)
	}
	if !strings.Contains(record.ErrorMessage, "connection refused") {
		t.Fatalf("expected failure reason, got %q", record.ErrorMessage)
	}
}

func TestHistoryReturnsLatestFirst(t *testing.T) {
	_, d, _ := newDispatcher(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := d.Dispatch(ctx, "processing", "user@example.com", map[string]string{"kind": "deposit"}); err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
	}
	if err := d.Dispatch(ctx, "processing", "other@example.com", map[string]string{"kind": "deposit"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	history, err := d.History(ctx, "user@example.com", 10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	for _, h := range history {
		if h.Target != "user@example.com" {
			t.Fatalf("unexpected target %s", h.Target)
		}
	}
}

func TestTemplateRegistryRender(t *testing.T) {
	registry := domain.NewRegistry()

	subject, body, err := registry.Render("registration_completed", map[string]string{
		"selected_name":       "Acme Ltd",
		"registration_number": "UK-1234",
		"note":                "",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if subject != "Your company registration is complete" {
		t.Fatalf("unexpected subject %q", subject)
	}
	if !strings.Contains(body, "Acme Ltd") || !strings.Contains(body, "UK-1234") {
		t.Fatalf("variables not substituted: %q", body)
	}

	if _, _, err := registry.Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
