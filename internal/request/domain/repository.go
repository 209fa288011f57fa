package domain

import (
	"context"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RequestRepository 资金请求仓储
type RequestRepository interface {
	// Create 创建请求（提交流程使用，初始状态 pending）
	Create(ctx context.Context, req *Request) error
	// GetByRequestID 按业务 ID 查询；不存在时返回 (nil, nil)
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	// List 按状态分页查询，created_at 倒序；status 为空时不过滤
	List(ctx context.Context, status approval.State, page *utils.Pagination) ([]*Request, int64, error)
	// CountByStatus 按状态分组计数，驱动分诊视图的状态桶模式
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// CountByFolder 按文件夹分组计数（仅直接成员）
	CountByFolder(ctx context.Context) (map[string]int64, error)
	// ClearFolder 在事务内将指向该文件夹的成员记录置空
	ClearFolder(tx *gorm.DB, folderID string) error
}
