package application

import (
	"context"
	"fmt"
	"strings"
	"testing"

	approvaldomain "github.com/wyfcoding/investplatform/internal/approval/domain"
	regdomain "github.com/wyfcoding/investplatform/internal/companyregistration/domain"
	regmysql "github.com/wyfcoding/investplatform/internal/companyregistration/infrastructure/persistence/mysql"
	reqdomain "github.com/wyfcoding/investplatform/internal/request/domain"
	reqmysql "github.com/wyfcoding/investplatform/internal/request/infrastructure/persistence/mysql"
	"github.com/wyfcoding/investplatform/internal/triage/domain"
	triagemysql "github.com/wyfcoding/investplatform/internal/triage/infrastructure/persistence/mysql"
	"github.com/wyfcoding/investplatform/pkg/db"
	"github.com/wyfcoding/investplatform/pkg/utils"

	"github.com/shopspring/decimal"
)

func newAggregator(t *testing.T) (*db.DB, *Aggregator, *reqmysql.RequestRepository) {
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

	if err := database.AutoMigrate(&domain.FolderNode{}, &reqdomain.Request{}, &regdomain.RegistrationRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	requestRepo := reqmysql.NewRequestRepository(database.DB)
	agg := NewAggregator(database, triagemysql.NewFolderRepository(database.DB), utils.NewSnowflakeID(3))
	agg.RegisterMemberSource(requestRepo)
	agg.RegisterStatusSource("request", []string{
		string(reqdomain.StatusPending),
		string(reqdomain.StatusProcessing),
		string(reqdomain.StatusCompleted),
		string(reqdomain.StatusRejected),
	}, requestRepo)
	agg.RegisterStatusSource("company_registration", regdomain.Statuses(),
		regmysql.NewRegistrationRepository(database.DB))

	return database, agg, requestRepo
}

func seedRequest(t *testing.T, database *db.DB, id string, status approvaldomain.State, folderID *string) {
	t.Helper()
	if status == "" {
		status = reqdomain.StatusPending
	}
	req := &reqdomain.Request{
		RequestID:      id,
		SubmitterID:    "user_1",
		SubmitterEmail: "user1@example.com",
		Kind:           reqdomain.KindDeposit,
		Amount:         decimal.NewFromInt(100),
		Currency:       "USD",
		Status:         status,
		FolderID:       folderID,
	}
	if err := database.Create(req).Error; err != nil {
		t.Fatalf("seed request failed: %v", err)
	}
}

func TestStatusCountsIncludeZeroBuckets(t *testing.T) {
	database, agg, _ := newAggregator(t)
	ctx := context.Background()

	seedRequest(t, database, "req_1", reqdomain.StatusPending, nil)
	seedRequest(t, database, "req_2", reqdomain.StatusPending, nil)
	seedRequest(t, database, "req_3", reqdomain.StatusRejected, nil)

	counts, err := agg.StatusCounts(ctx, "request")
	if err != nil {
		t.Fatalf("status counts failed: %v", err)
	}

	got := make(map[string]int64)
	for _, c := range counts {
		if c.EntityType != "request" {
			t.Fatalf("unexpected entity type %s", c.EntityType)
		}
		got[c.Status] = c.Count
	}

	want := map[string]int64{
		"pending":    2,
		"processing": 0,
		"completed":  0,
		"rejected":   1,
	}
	for status, n := range want {
		count, ok := got[status]
		if !ok {
			t.Fatalf("status %s missing from result", status)
		}
		if count != n {
			t.Fatalf("status %s = %d, want %d", status, count, n)
		}
	}
}

func TestRegistrationStatusBucketsCoverWholeEnum(t *testing.T) {
	database, agg, _ := newAggregator(t)
	ctx := context.Background()

	// processing 由外部尽调流程写入，不经过管理员迁移
	reg := &regdomain.RegistrationRequest{
		RegistrationID: "reg_1",
		SubmitterID:    "user_1",
		CandidateNames: []string{"Acme Ltd"},
		Jurisdiction:   "UK",
		ContactEmail:   "user1@example.com",
		Status:         regdomain.StatusProcessing,
	}
	if err := database.Create(reg).Error; err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	counts, err := agg.StatusCounts(ctx, "company_registration")
	if err != nil {
		t.Fatalf("status counts failed: %v", err)
	}

	got := make(map[string]int64)
	for _, c := range counts {
		got[c.Status] = c.Count
	}
	for _, status := range regdomain.Statuses() {
		if _, ok := got[status]; !ok {
			t.Fatalf("status %s missing from buckets", status)
		}
	}
	if got["processing"] != 1 {
		t.Fatalf("processing = %d, want 1", got["processing"])
	}
	if got["pending"] != 0 {
		t.Fatalf("pending = %d, want 0", got["pending"])
	}
}

func TestCreateFolderRequiresExistingParent(t *testing.T) {
	_, agg, _ := newAggregator(t)
	ctx := context.Background()

	if _, err := agg.CreateFolder(ctx, "Escalations", "fld_missing"); err == nil {
		t.Fatal("expected error for unknown parent")
	}
	if _, err := agg.CreateFolder(ctx, "", ""); err == nil {
		t.Fatal("expected error for empty name")
	}

	root, err := agg.CreateFolder(ctx, "Inbox", "")
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	if _, err := agg.CreateFolder(ctx, "Escalations", root.FolderID); err != nil {
		t.Fatalf("create child failed: %v", err)
	}
}

func TestFolderTreeCountsDirectMembers(t *testing.T) {
	database, agg, _ := newAggregator(t)
	ctx := context.Background()

	root, err := agg.CreateFolder(ctx, "Inbox", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	child, err := agg.CreateFolder(ctx, "Escalations", root.FolderID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	seedRequest(t, database, "req_1", "", &root.FolderID)
	seedRequest(t, database, "req_2", "", &child.FolderID)
	seedRequest(t, database, "req_3", "", &child.FolderID)

	tree, err := agg.FolderTree(ctx)
	if err != nil {
		t.Fatalf("folder tree failed: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}

	rootNode := tree[0]
	if rootNode.Folder.FolderID != root.FolderID {
		t.Fatalf("unexpected root %s", rootNode.Folder.FolderID)
	}
	// 计数只含直接成员，不向上聚合
	if rootNode.TaskCount != 1 {
		t.Fatalf("root count = %d, want 1", rootNode.TaskCount)
	}
	if len(rootNode.Children) != 1 || rootNode.Children[0].TaskCount != 2 {
		t.Fatalf("unexpected children: %+v", rootNode.Children)
	}
}

func TestDeleteFolderDetachesMembers(t *testing.T) {
	database, agg, requestRepo := newAggregator(t)
	ctx := context.Background()

	folder, err := agg.CreateFolder(ctx, "Stale", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	seedRequest(t, database, "req_1", "", &folder.FolderID)

	if err := agg.DeleteFolder(ctx, folder.FolderID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	req, err := requestRepo.GetByRequestID(ctx, "req_1")
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if req.FolderID != nil {
		t.Fatalf("member must be detached, got folder %v", *req.FolderID)
	}

	tree, err := agg.FolderTree(ctx)
	if err != nil {
		t.Fatalf("folder tree failed: %v", err)
	}
	if len(tree) != 0 {
		t.Fatalf("expected empty tree, got %d roots", len(tree))
	}

	if err := agg.DeleteFolder(ctx, folder.FolderID); err == nil {
		t.Fatal("expected error deleting twice")
	}
}

func TestDeleteFolderPromotesChildrenToRoots(t *testing.T) {
	database, agg, _ := newAggregator(t)
	ctx := context.Background()

	parent, err := agg.CreateFolder(ctx, "Inbox", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	child, err := agg.CreateFolder(ctx, "Escalations", parent.FolderID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := agg.DeleteFolder(ctx, parent.FolderID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var got domain.FolderNode
	if err := database.Where("folder_id = ?", child.FolderID).First(&got).Error; err != nil {
		t.Fatalf("child folder not found: %v", err)
	}
	if got.ParentID != "" {
		t.Fatalf("child must not reference deleted parent, got %q", got.ParentID)
	}

	tree, err := agg.FolderTree(ctx)
	if err != nil {
		t.Fatalf("folder tree failed: %v", err)
	}
	if len(tree) != 1 || tree[0].Folder.FolderID != child.FolderID {
		t.Fatalf("expected child promoted to root, got %+v", tree)
	}
}

func TestBuildTreeHandlesCyclesAndDanglingParents(t *testing.T) {
	folders := []*domain.FolderNode{
		{FolderID: "a", Name: "Alpha", ParentID: "b"},
		{FolderID: "b", Name: "Beta", ParentID: "a"},
		{FolderID: "c", Name: "Gamma", ParentID: "ghost"},
		{FolderID: "d", Name: "Delta", ParentID: ""},
		{FolderID: "e", Name: "Epsilon", ParentID: "d"},
	}

	roots := BuildTree(folders, map[string]int64{"e": 4})

	// 环中的 a、b 与悬空的 c 都按根处理
	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	var names []string
	for _, n := range roots {
		names = append(names, n.Folder.Name)
	}
	want := []string{"Alpha", "Beta", "Delta", "Gamma"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("roots = %v, want %v", names, want)
		}
	}

	for _, n := range roots {
		if n.Folder.FolderID == "d" {
			if len(n.Children) != 1 || n.Children[0].Folder.FolderID != "e" {
				t.Fatalf("delta children mismatch: %+v", n.Children)
			}
			if n.Children[0].TaskCount != 4 {
				t.Fatalf("epsilon count = %d, want 4", n.Children[0].TaskCount)
			}
		}
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	if roots := BuildTree(nil, nil); len(roots) != 0 {
		t.Fatalf("expected empty tree, got %d roots", len(roots))
	}
}
