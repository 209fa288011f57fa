package application

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wyfcoding/investplatform/internal/audit/domain"
	auditmysql "github.com/wyfcoding/investplatform/internal/audit/infrastructure/persistence/mysql"
	"github.com/wyfcoding/investplatform/pkg/db"
)

type stubProfiles struct {
	names map[string]string
}

func (s *stubProfiles) ResolveDisplayName(ctx context.Context, userID string) (string, error) {
	if name, ok := s.names[userID]; ok {
		return name, nil
	}
	return "", domain.ErrProfileNotFound
}

func newReader(t *testing.T) (*db.DB, *TrailReader) {
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

	if err := database.AutoMigrate(&domain.AuditEntry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	profiles := &stubProfiles{names: map[string]string{
		"admin_1": "Dana Admin",
		"user_1":  "Sam Submitter",
	}}
	return database, NewTrailReader(auditmysql.NewEntryRepository(database.DB), profiles)
}

func seedEntries(t *testing.T, database *db.DB) {
	t.Helper()
	entries := []*domain.AuditEntry{
		{EntryID: "aud_1", ActorID: "admin_1", SubjectID: "user_1", RelatedRequestID: "req_1", Action: domain.ActionApproved, Note: "deposit cleared"},
		{EntryID: "aud_2", ActorID: "admin_1", SubjectID: "user_2", RelatedRequestID: "req_2", Action: domain.ActionRejected, Note: "missing documents"},
		{EntryID: "aud_3", ActorID: "admin_1", SubjectID: "user_1", RelatedRequestID: "reg_1", Action: domain.ActionNameSelected},
		{EntryID: "aud_4", ActorID: "admin_9", SubjectID: "user_3", Action: "password_reset"},
	}
	for _, e := range entries {
		if err := database.Create(e).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestListResolvesNamesAndDerivedFields(t *testing.T) {
	database, reader := newReader(t)
	seedEntries(t, database)
	ctx := context.Background()

	view, err := reader.List(ctx, domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(view.Items) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(view.Items))
	}

	byID := make(map[string]*EntryView)
	for _, item := range view.Items {
		byID[item.EntryID] = item
	}

	approved := byID["aud_1"]
	if approved.ActorName != "Dana Admin" || approved.SubjectName != "Sam Submitter" {
		t.Fatalf("unexpected resolved names: %+v", approved)
	}
	if approved.Severity != string(domain.SeverityHigh) {
		t.Fatalf("expected high severity, got %s", approved.Severity)
	}
	if approved.ResourceType != domain.ResourceVerificationRequest {
		t.Fatalf("expected verification request, got %s", approved.ResourceType)
	}

	// 无法解析的用户回退为截断 ID
	unresolved := byID["aud_4"]
	if unresolved.ActorName != "admin_9" {
		t.Fatalf("short id should stay intact, got %s", unresolved.ActorName)
	}
	if unresolved.ResourceType != domain.ResourceUserAction {
		t.Fatalf("expected user action, got %s", unresolved.ResourceType)
	}
	if unresolved.Severity != string(domain.SeverityLow) {
		t.Fatalf("expected low severity, got %s", unresolved.Severity)
	}
}

func TestNameFallbackTruncatesLongIDs(t *testing.T) {
	database, reader := newReader(t)
	if err := database.Create(&domain.AuditEntry{
		EntryID: "aud_1", ActorID: "very_long_user_identifier", SubjectID: "user_x", Action: "login",
	}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	view, err := reader.List(context.Background(), domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := view.Items[0].ActorName; got != "very_lon…" {
		t.Fatalf("expected truncated fallback, got %q", got)
	}
}

func TestListFilters(t *testing.T) {
	database, reader := newReader(t)
	seedEntries(t, database)
	ctx := context.Background()

	text, err := reader.List(ctx, domain.Filter{Text: "documents"}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(text.Items) != 1 || text.Items[0].EntryID != "aud_2" {
		t.Fatalf("text filter mismatch: %+v", text.Items)
	}

	high, err := reader.List(ctx, domain.Filter{Severity: domain.SeverityHigh}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(high.Items) != 2 {
		t.Fatalf("expected 2 high severity entries, got %d", len(high.Items))
	}

	low, err := reader.List(ctx, domain.Filter{Severity: domain.SeverityLow}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(low.Items) != 1 || low.Items[0].EntryID != "aud_4" {
		t.Fatalf("low severity mismatch: %+v", low.Items)
	}

	action, err := reader.List(ctx, domain.Filter{Action: domain.ActionNameSelected}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(action.Items) != 1 || action.Items[0].EntryID != "aud_3" {
		t.Fatalf("action filter mismatch: %+v", action.Items)
	}
}

func TestCacheInvalidation(t *testing.T) {
	database, reader := newReader(t)
	seedEntries(t, database)
	ctx := context.Background()

	first, err := reader.List(ctx, domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// 绕过读取器直接写入：缓存命中时结果保持陈旧
	if err := database.Create(&domain.AuditEntry{
		EntryID: "aud_5", ActorID: "admin_1", SubjectID: "user_4", Action: domain.ActionApproved,
	}).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	cached, err := reader.List(ctx, domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cached.Items) != len(first.Items) {
		t.Fatalf("expected cached result, got %d items", len(cached.Items))
	}

	reader.OnAuditRecorded(ctx, domain.AuditRecordedEvent{EntryID: "aud_5"})

	fresh, err := reader.List(ctx, domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(fresh.Items) != len(first.Items)+1 {
		t.Fatalf("expected fresh result after invalidation, got %d items", len(fresh.Items))
	}
}

func TestCacheExpiresWithoutEvents(t *testing.T) {
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
	if err := database.AutoMigrate(&domain.AuditEntry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// 没有事件消费者，缓存只能靠过期兜底
	reader := NewTrailReader(auditmysql.NewEntryRepository(database.DB), &stubProfiles{}, WithCacheTTL(20*time.Millisecond))

	if err := database.Create(&domain.AuditEntry{
		EntryID: "aud_1", ActorID: "admin_1", SubjectID: "user_1", Action: domain.ActionApproved,
	}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	first, err := reader.List(context.Background(), domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first.Items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(first.Items))
	}

	if err := database.Create(&domain.AuditEntry{
		EntryID: "aud_2", ActorID: "admin_1", SubjectID: "user_2", Action: domain.ActionRejected,
	}).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	fresh, err := reader.List(context.Background(), domain.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(fresh.Items) != 2 {
		t.Fatalf("re-query after TTL returned %d items, want 2", len(fresh.Items))
	}
}

func TestGetUnknownEntry(t *testing.T) {
	_, reader := newReader(t)

	if _, err := reader.Get(context.Background(), "aud_missing"); err == nil {
		t.Fatal("expected error for unknown entry")
	}
}
