package domain

import (
	"context"

	"gorm.io/gorm"

	approval "github.com/wyfcoding/investplatform/internal/approval/domain"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

// RegistrationRepository 注册申请仓储
type RegistrationRepository interface {
	// Create 创建申请（初始状态 pending）
	Create(ctx context.Context, req *RegistrationRequest) error
	// GetByRegistrationID 按业务 ID 查询；不存在时返回 (nil, nil)
	GetByRegistrationID(ctx context.Context, registrationID string) (*RegistrationRequest, error)
	// List 按状态分页查询，created_at 倒序；status 为空时不过滤
	List(ctx context.Context, status approval.State, page *utils.Pagination) ([]*RegistrationRequest, int64, error)
	// CountByStatus 按状态分组计数
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// CountByFolder 按文件夹分组计数（仅直接成员）
	CountByFolder(ctx context.Context) (map[string]int64, error)
	// ClearFolder 在事务内将指向该文件夹的成员记录置空
	ClearFolder(tx *gorm.DB, folderID string) error
}

// CompanyRepository 已注册公司仓储
type CompanyRepository interface {
	// GetByCompanyID 按业务 ID 查询；不存在时返回 (nil, nil)
	GetByCompanyID(ctx context.Context, companyID string) (*RegisteredCompany, error)
	// GetByRegistrationNumber 按注册号查询；不存在时返回 (nil, nil)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*RegisteredCompany, error)
	// ListByOwner 按所有者查询
	ListByOwner(ctx context.Context, ownerID string) ([]*RegisteredCompany, error)
}
