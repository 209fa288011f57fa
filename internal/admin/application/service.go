// Package application 管理端身份应用层
package application

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/investplatform/internal/admin/domain"
	auditdomain "github.com/wyfcoding/investplatform/internal/audit/domain"
)

// 管理员判定结果的缓存时长
const adminCacheTTL = time.Minute

type cachedAdmin struct {
	isAdmin bool
	expires time.Time
}

// IdentityService 提供审批授权与审计展示名解析。
// 同时实现工作流引擎的 AuthService 与审计读取器的 ProfileLookup。
type IdentityService struct {
	admins   domain.AdminRepository
	profiles domain.ProfileRepository

	mu    sync.Mutex
	cache map[string]cachedAdmin
}

// NewIdentityService 创建身份服务
func NewIdentityService(admins domain.AdminRepository, profiles domain.ProfileRepository) *IdentityService {
	return &IdentityService{
		admins:   admins,
		profiles: profiles,
		cache:    make(map[string]cachedAdmin),
	}
}

// IsAdmin 判定 actor 是否为启用的管理员
func (s *IdentityService) IsAdmin(ctx context.Context, actorID string) (bool, error) {
	s.mu.Lock()
	if c, ok := s.cache[actorID]; ok && time.Now().Before(c.expires) {
		s.mu.Unlock()
		return c.isAdmin, nil
	}
	s.mu.Unlock()

	admin, err := s.admins.GetByUserID(ctx, actorID)
	if err != nil {
		return false, err
	}
	isAdmin := admin != nil && admin.Active

	s.mu.Lock()
	s.cache[actorID] = cachedAdmin{isAdmin: isAdmin, expires: time.Now().Add(adminCacheTTL)}
	s.mu.Unlock()

	return isAdmin, nil
}

// ResolveDisplayName 解析用户展示名
func (s *IdentityService) ResolveDisplayName(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", auditdomain.ErrProfileNotFound
	}
	return profile.DisplayName, nil
}

// RegisterAdmin 创建管理员账户
func (s *IdentityService) RegisterAdmin(ctx context.Context, userID, username, role string) error {
	if role == "" {
		role = domain.RoleAdmin
	}
	return s.admins.Create(ctx, &domain.Admin{
		UserID:   userID,
		Username: username,
		Role:     role,
		Active:   true,
	})
}

// SaveProfile 新增或更新用户资料
func (s *IdentityService) SaveProfile(ctx context.Context, userID, displayName, email string) error {
	return s.profiles.Upsert(ctx, &domain.UserProfile{
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
	})
}
