package domain

import (
	"context"
	"errors"

	"github.com/wyfcoding/investplatform/pkg/utils"
)

// ErrProfileNotFound 用户资料不存在
var ErrProfileNotFound = errors.New("user profile not found")

// Filter 审计查询过滤条件，零值字段不生效
type Filter struct {
	// Text 对 action/note/actor_id/subject_id 的模糊匹配
	Text string
	// Severity 按推导出的严重级别过滤
	Severity Severity
	// Action 精确匹配动作词汇
	Action string
}

// EntryRepository 审计条目仓储（只读 + 追加）
type EntryRepository interface {
	// List 按过滤条件分页查询，created_at 倒序（最新在前）
	List(ctx context.Context, filter Filter, page *utils.Pagination) ([]*AuditEntry, int64, error)
	// GetByEntryID 按业务 ID 查询；不存在时返回 (nil, nil)
	GetByEntryID(ctx context.Context, entryID string) (*AuditEntry, error)
}

// ProfileLookup 外部用户资料查询能力
type ProfileLookup interface {
	// ResolveDisplayName 解析用户显示名；未找到时返回 ErrProfileNotFound
	ResolveDisplayName(ctx context.Context, userID string) (string, error)
}
