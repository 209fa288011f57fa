// Package application 审计视图的只读投影
package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wyfcoding/investplatform/internal/audit/domain"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// displayIDLength 显示名回退时保留的标识符长度
const displayIDLength = 8

// defaultCacheTTL 缓存页的存活时间。
// 事件订阅只是提前失效的快路径，过期兜底保证未配置 Kafka 时
// 重新查询仍能看到新写入的条目。
const defaultCacheTTL = 30 * time.Second

// EntryView 审计条目视图，附加解析后的显示名与推导字段
type EntryView struct {
	EntryID          string    `json:"entry_id"`
	ActorID          string    `json:"actor_id"`
	ActorName        string    `json:"actor_name"`
	SubjectID        string    `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	RelatedRequestID string    `json:"related_request_id,omitempty"`
	Action           string    `json:"action"`
	Severity         string    `json:"severity"`
	ResourceType     string    `json:"resource_type"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// EntryListView 分页列表视图
type EntryListView struct {
	Items      []*EntryView      `json:"items"`
	Pagination *utils.Pagination `json:"pagination"`
}

type cacheKey struct {
	filter domain.Filter
	page   int
	size   int
}

type cachedPage struct {
	view     *EntryListView
	storedAt time.Time
}

// TrailReader 审计轨迹读取器。
// 缓存最近的查询结果，收到审计写入事件时整体失效；
// 缓存页同时带 TTL，事件订阅不可用时到期后自动回源查询。
type TrailReader struct {
	repo     domain.EntryRepository
	profiles domain.ProfileLookup
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cachedPage
}

// ReaderOption 读取器可选配置
type ReaderOption func(*TrailReader)

// WithCacheTTL 配置缓存页存活时间
func WithCacheTTL(d time.Duration) ReaderOption {
	return func(r *TrailReader) { r.cacheTTL = d }
}

// NewTrailReader 创建审计轨迹读取器
func NewTrailReader(repo domain.EntryRepository, profiles domain.ProfileLookup, opts ...ReaderOption) *TrailReader {
	r := &TrailReader{
		repo:     repo,
		profiles: profiles,
		cacheTTL: defaultCacheTTL,
		cache:    make(map[cacheKey]cachedPage),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List 按过滤条件分页查询，最新在前
func (r *TrailReader) List(ctx context.Context, filter domain.Filter, page, pageSize int) (*EntryListView, error) {
	key := cacheKey{filter: filter, page: page, size: pageSize}

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok && time.Since(cached.storedAt) < r.cacheTTL {
		r.mu.RUnlock()
		return cached.view, nil
	}
	r.mu.RUnlock()

	pagination := utils.NewPagination(page, pageSize, 0)
	entries, total, err := r.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	items := make([]*EntryView, 0, len(entries))
	for _, e := range entries {
		items = append(items, r.toView(ctx, e))
	}

	view := &EntryListView{
		Items:      items,
		Pagination: utils.NewPagination(page, pageSize, total),
	}

	r.mu.Lock()
	r.cache[key] = cachedPage{view: view, storedAt: time.Now()}
	r.mu.Unlock()

	return view, nil
}

// Get 按业务 ID 查询单条审计条目
func (r *TrailReader) Get(ctx context.Context, entryID string) (*EntryView, error) {
	entry, err := r.repo.GetByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("audit entry %s not found", entryID)
	}
	return r.toView(ctx, entry), nil
}

// Invalidate 使缓存失效。审计事件消费者在每次写入事件后调用。
func (r *TrailReader) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[cacheKey]cachedPage)
	r.mu.Unlock()
}

// OnAuditRecorded 处理审计写入事件
func (r *TrailReader) OnAuditRecorded(ctx context.Context, event domain.AuditRecordedEvent) {
	logger.Debug(ctx, "audit cache invalidated", "entry_id", event.EntryID)
	r.Invalidate()
}

func (r *TrailReader) toView(ctx context.Context, e *domain.AuditEntry) *EntryView {
	return &EntryView{
		EntryID:          e.EntryID,
		ActorID:          e.ActorID,
		ActorName:        r.resolveName(ctx, e.ActorID),
		SubjectID:        e.SubjectID,
		SubjectName:      r.resolveName(ctx, e.SubjectID),
		RelatedRequestID: e.RelatedRequestID,
		Action:           e.Action,
		Severity:         string(domain.DeriveSeverity(e.Action)),
		ResourceType:     domain.ResourceType(e),
		Note:             e.Note,
		CreatedAt:        e.CreatedAt,
	}
}

// resolveName 解析显示名；查询失败时确定性回退为截断的原始 ID
func (r *TrailReader) resolveName(ctx context.Context, userID string) string {
	if r.profiles != nil {
		name, err := r.profiles.ResolveDisplayName(ctx, userID)
		if err == nil && name != "" {
			return name
		}
	}
	return utils.TruncateID(userID, displayIDLength)
}
