package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wyfcoding/investplatform/internal/admin/domain"
	adminmysql "github.com/wyfcoding/investplatform/internal/admin/infrastructure/persistence/mysql"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/db"
)

func newIdentity(t *testing.T) (*db.DB, *IdentityService) {
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

	if err := database.AutoMigrate(&domain.Admin{}, &domain.UserProfile{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return database, NewIdentityService(
		adminmysql.NewAdminRepository(database),
		adminmysql.NewProfileRepository(database),
	)
}

func TestIsAdmin(t *testing.T) {
	database, identity := newIdentity(t)
	ctx := context.Background()

	if err := identity.RegisterAdmin(ctx, "admin_1", "dana", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ok, err := identity.IsAdmin(ctx, "admin_1")
	if err != nil || !ok {
		t.Fatalf("expected admin, got ok=%v err=%v", ok, err)
	}

	ok, err = identity.IsAdmin(ctx, "user_1")
	if err != nil || ok {
		t.Fatalf("expected non-admin, got ok=%v err=%v", ok, err)
	}

	// 停用的管理员不具备审批能力
	if err := database.Model(&domain.Admin{}).Where("user_id = ?", "admin_1").
		Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	fresh := NewIdentityService(
		adminmysql.NewAdminRepository(database),
		adminmysql.NewProfileRepository(database),
	)
	ok, err = fresh.IsAdmin(ctx, "admin_1")
	if err != nil || ok {
		t.Fatalf("deactivated admin must be denied, got ok=%v err=%v", ok, err)
	}
}

func TestIsAdminCachesResult(t *testing.T) {
	database, identity := newIdentity(t)
	ctx := context.Background()

	if err := identity.RegisterAdmin(ctx, "admin_1", "dana", domain.RoleSuperAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if ok, _ := identity.IsAdmin(ctx, "admin_1"); !ok {
		t.Fatal("expected admin")
	}

	// 直接停用后缓存窗口内仍返回旧结果
	if err := database.Model(&domain.Admin{}).Where("user_id = ?", "admin_1").
		Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if ok, _ := identity.IsAdmin(ctx, "admin_1"); !ok {
		t.Fatal("expected cached result within TTL")
	}
}

func TestResolveDisplayName(t *testing.T) {
	_, identity := newIdentity(t)
	ctx := context.Background()

	if err := identity.SaveProfile(ctx, "user_1", "Sam Submitter", "sam@example.com"); err != nil {
		t.Fatalf("save profile failed: %v", err)
	}

	name, err := identity.ResolveDisplayName(ctx, "user_1")
	if err != nil || name != "Sam Submitter" {
		t.Fatalf("expected Sam Submitter, got %q err=%v", name, err)
	}

	_, err = identity.ResolveDisplayName(ctx, "ghost")
	if !errors.Is(err, auditdomain.ErrProfileNotFound) {
		t.Fatalf("expected profile not found, got %v", err)
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	database, identity := newIdentity(t)
	ctx := context.Background()

	if err := identity.SaveProfile(ctx, "user_1", "Old Name", "old@example.com"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := identity.SaveProfile(ctx, "user_1", "New Name", "new@example.com"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	var count int64
	database.Model(&domain.UserProfile{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected single profile row, got %d", count)
	}

	name, err := identity.ResolveDisplayName(ctx, "user_1")
	if err != nil || name != "New Name" {
		t.Fatalf("expected New Name, got %q err=%v", name, err)
	}
}
