// Package domain 分诊视图的领域模型：状态桶与层级文件夹
package domain

import (
	"context"

	"gorm.io/gorm"
)

// FolderNode 分诊文件夹。parent_id 为空表示根节点；
// 层级关系仅用于展示，计数不向上累加。
type FolderNode struct {
	gorm.Model
	// FolderID 业务标识
	FolderID string `gorm:"column:folder_id;type:varchar(32);uniqueIndex;not null" json:"folder_id"`
	// Name 文件夹名称
	Name string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	// ParentID 父文件夹业务 ID，空串表示根
	ParentID string `gorm:"column:parent_id;type:varchar(32);index" json:"parent_id,omitempty"`
}

// TableName 指定表名
func (FolderNode) TableName() string {
	return "triage_folders"
}

// TreeNode 文件夹树节点，task_count 只统计直接成员
type TreeNode struct {
	Folder    *FolderNode `json:"folder"`
	TaskCount int64       `json:"task_count"`
	Children  []*TreeNode `json:"children"`
}

// StatusCount 状态桶计数
type StatusCount struct {
	EntityType string `json:"entity_type"`
	Status     string `json:"status"`
	Count      int64  `json:"count"`
}

// FolderRepository 文件夹仓储
type FolderRepository interface {
	// Create 创建文件夹
	Create(ctx context.Context, folder *FolderNode) error
	// GetByFolderID 按业务 ID 查询；不存在时返回 (nil, nil)
	GetByFolderID(ctx context.Context, folderID string) (*FolderNode, error)
	// ListAll 返回全部文件夹
	ListAll(ctx context.Context) ([]*FolderNode, error)
	// DeleteTx 在事务内删除文件夹行
	DeleteTx(tx *gorm.DB, folderID string) error
	// ClearParentTx 在事务内将指向该父文件夹的子文件夹提升为根
	ClearParentTx(tx *gorm.DB, parentID string) error
}

// MemberSource 文件夹成员来源。每个可分诊的实体类型提供一份实现。
type MemberSource interface {
	// CountByFolder 按文件夹分组计数（仅直接成员）
	CountByFolder(ctx context.Context) (map[string]int64, error)
	// ClearFolder 在事务内将指向该文件夹的成员记录置空
	ClearFolder(tx *gorm.DB, folderID string) error
}

// StatusSource 状态桶来源
type StatusSource interface {
	// CountByStatus 按状态分组计数
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
