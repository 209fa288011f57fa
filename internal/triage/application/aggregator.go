// Package application 分诊聚合服务：状态桶计数与文件夹树
package application

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/wyfcoding/investplatform/internal/triage/domain"
	"github.com/wyfcoding/investplatform/pkg/db"
	"github.com/wyfcoding/investplatform/pkg/logger"
	"github.com/wyfcoding/investplatform/pkg/utils"
)

type statusSource struct {
	entityType string
	statuses   []string
	source     domain.StatusSource
}

// Aggregator 分诊聚合器。
// 对请求/注册申请只读；唯一的写路径是文件夹删除，且自身是原子的。
type Aggregator struct {
	database *db.DB
	folders  domain.FolderRepository
	members  []domain.MemberSource
	statuses []statusSource
	idgen    *utils.SnowflakeID
}

// NewAggregator 创建分诊聚合器
func NewAggregator(database *db.DB, folders domain.FolderRepository, idgen *utils.SnowflakeID) *Aggregator {
	return &Aggregator{
		database: database,
		folders:  folders,
		idgen:    idgen,
	}
}

// RegisterMemberSource 注册文件夹成员来源
func (a *Aggregator) RegisterMemberSource(src domain.MemberSource) {
	a.members = append(a.members, src)
}

// RegisterStatusSource 注册状态桶来源及其完整状态枚举。
// 枚举保证没有记录的状态也以 0 计数出现。
func (a *Aggregator) RegisterStatusSource(entityType string, statuses []string, src domain.StatusSource) {
	a.statuses = append(a.statuses, statusSource{entityType: entityType, statuses: statuses, source: src})
}

// StatusCounts 状态桶模式：按实体类型返回每个状态的计数。
// entityType 为空时返回所有已注册类型。
func (a *Aggregator) StatusCounts(ctx context.Context, entityType string) ([]domain.StatusCount, error) {
	var result []domain.StatusCount

	for _, s := range a.statuses {
		if entityType != "" && s.entityType != entityType {
			continue
		}

		counts, err := s.source.CountByStatus(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s by status: %w", s.entityType, err)
		}

		for _, status := range s.statuses {
			result = append(result, domain.StatusCount{
				EntityType: s.entityType,
				Status:     status,
				Count:      counts[status],
			})
		}
	}

	return result, nil
}

// CreateFolder 创建文件夹；parentID 非空时必须指向已存在的文件夹
func (a *Aggregator) CreateFolder(ctx context.Context, name, parentID string) (*domain.FolderNode, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}
	if parentID != "" {
		parent, err := a.folders.GetByFolderID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent folder %s not found", parentID)
		}
	}

	folder := &domain.FolderNode{
		FolderID: a.idgen.GenerateWithPrefix("fld"),
		Name:     name,
		ParentID: parentID,
	}
	if err := a.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// FolderTree 层级文件夹模式：构建文件夹树并填充直接成员计数。
// 悬空父引用与环形父链都按根节点处理，不会死循环。
func (a *Aggregator) FolderTree(ctx context.Context) ([]*TreeNode, error) {
	folders, err := a.folders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}

	counts := make(map[string]int64)
	for _, src := range a.members {
		perFolder, err := src.CountByFolder(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count folder members: %w", err)
		}
		for id, n := range perFolder {
			counts[id] += n
		}
	}

	return BuildTree(folders, counts), nil
}

// DeleteFolder 删除文件夹：将全部成员记录的 folder_id 置空、
// 子文件夹提升为根，再删除文件夹行，全部在同一事务内完成，
// 不产生悬空引用。
func (a *Aggregator) DeleteFolder(ctx context.Context, folderID string) error {
	folder, err := a.folders.GetByFolderID(ctx, folderID)
	if err != nil {
		return err
	}
	if folder == nil {
		return fmt.Errorf("folder %s not found", folderID)
	}

	err = a.database.WithTx(ctx, func(tx *gorm.DB) error {
		for _, src := range a.members {
			if err := src.ClearFolder(tx, folderID); err != nil {
				return err
			}
		}
		if err := a.folders.ClearParentTx(tx, folderID); err != nil {
			return err
		}
		return a.folders.DeleteTx(tx, folderID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	logger.Info(ctx, "folder deleted", "folder_id", folderID, "name", folder.Name)
	return nil
}

// TreeNode 对外暴露的树节点别名
type TreeNode = domain.TreeNode

// BuildTree 从文件夹行构建树。纯函数，环检测通过父链遍历的 visited 集完成：
// 父链成环的节点视为根，而不是无限循环。
func BuildTree(folders []*domain.FolderNode, counts map[string]int64) []*TreeNode {
	byID := make(map[string]*domain.FolderNode, len(folders))
	for _, f := range folders {
		byID[f.FolderID] = f
	}

	isRoot := func(f *domain.FolderNode) bool {
		if f.ParentID == "" {
			return true
		}
		if _, ok := byID[f.ParentID]; !ok {
			// 悬空父引用
			return true
		}
		// 沿父链上溯，回到自身或遇到重复节点说明成环
		visited := map[string]bool{f.FolderID: true}
		cur := f.ParentID
		for cur != "" {
			if visited[cur] {
				return true
			}
			visited[cur] = true
			parent, ok := byID[cur]
			if !ok {
				break
			}
			cur = parent.ParentID
		}
		return false
	}

	nodes := make(map[string]*TreeNode, len(folders))
	for _, f := range folders {
		nodes[f.FolderID] = &TreeNode{
			Folder:    f,
			TaskCount: counts[f.FolderID],
		}
	}

	var roots []*TreeNode
	for _, f := range folders {
		node := nodes[f.FolderID]
		if isRoot(f) {
			roots = append(roots, node)
			continue
		}
		parent := nodes[f.ParentID]
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*TreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Folder.Name < nodes[j].Folder.Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
