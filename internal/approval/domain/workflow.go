// Package domain 审批工作流的领域模型：状态机、迁移表与适配器契约
package domain

import (
	"gorm.io/gorm"
)

// State 实体状态
type State string

// Action 管理员动作
type Action string

// 各实体类型共用的动作词汇
const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Transition 一条合法的状态迁移
type Transition struct {
	From   State
	Action Action
	To     State
}

// Table 迁移表，(当前状态, 动作) → 下一状态 的全量映射
type Table []Transition

// Next 查询迁移表，返回目标状态及该迁移是否合法
func (t Table) Next(from State, action Action) (State, bool) {
	for _, tr := range t {
		if tr.From == from && tr.Action == action {
			return tr.To, true
		}
	}
	return "", false
}

// Payload 动作附带数据。Note 为管理员备注，Fields 为动作特定字段
// （如 selected_name、registration_number、incorporation_date）。
type Payload struct {
	Note   string
	Fields map[string]string
}

// Field 读取动作特定字段，缺失时返回空串
func (p Payload) Field(key string) string {
	if p.Fields == nil {
		return ""
	}
	return p.Fields[key]
}

// Entity 可被工作流引擎驱动的实体
type Entity interface {
	// BusinessID 业务标识（如 req_xxx）
	BusinessID() string
	// Submitter 提交者用户 ID
	Submitter() string
	// CurrentStatus 当前状态
	CurrentStatus() State
}

// Notice 迁移触发的通知指令
type Notice struct {
	TemplateKey string
	To          string
	Variables   map[string]string
}

// Definition 实体类型接入工作流引擎的契约。
// 新增工作流类型只需提供新的 Definition 实现，引擎本身不变。
type Definition interface {
	// EntityType 实体类型标识，用于日志、指标与审计
	EntityType() string

	// Table 该实体类型的迁移表
	Table() Table

	// Load 在事务内按业务 ID 加载实体；不存在时返回 (nil, nil)
	Load(tx *gorm.DB, entityID string) (Entity, error)

	// ValidatePayload 校验动作所需的字段完整性；
	// 不完整时返回以 ErrIncompletePayload 包装的错误
	ValidatePayload(action Action, p Payload) error

	// Apply 在事务内应用迁移：以状态守卫条件更新实体行（WHERE status = 旧状态），
	// 并创建迁移要求的附加记录。返回守卫更新是否命中；
	// 未命中说明状态已被并发迁移抢先。成功时同步更新内存中的实体。
	Apply(tx *gorm.DB, e Entity, action Action, next State, p Payload) (applied bool, err error)

	// Notification 返回迁移对应的通知指令；该迁移不要求通知时返回 nil
	Notification(e Entity, action Action, next State, p Payload) *Notice

	// AuditAction 迁移写入审计日志时使用的动作词汇
	AuditAction(action Action) string
}
