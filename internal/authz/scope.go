package authz

import (
	"errors"

	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// ErrNoStoreAssigned 店铺管理员未绑定任何店铺
var ErrNoStoreAssigned = errors.New("no store assigned")

// Scope 请求主体的数据可见范围
// 所有仓储查询通过 Scope 收敛租户过滤条件，避免散落的 store_id 判断
type Scope struct {
	UserID  uint
	Role    models.Role
	StoreID *uint
}

// ScopeForUser 从用户构建 Scope
func ScopeForUser(user *models.User) Scope {
	if user == nil {
		return Scope{}
	}
	return Scope{
		UserID:  user.ID,
		Role:    user.Role,
		StoreID: user.StoreID,
	}
}

// SystemScope 后台任务使用的全量 Scope（不过滤租户）
func SystemScope() Scope {
	return Scope{Role: models.RoleSuperAdmin}
}

// ScopeForStore 后台任务使用的单店铺 Scope
func ScopeForStore(storeID uint) Scope {
	return Scope{Role: models.RoleStoreAdmin, StoreID: &storeID}
}

// IsSuper 是否为平台超级管理员
func (s Scope) IsSuper() bool {
	return s.Role.IsSuper()
}

// RequireStore 返回当前主体的店铺 ID
// 超级管理员没有固定店铺，店铺管理员未绑定店铺时返回 ErrNoStoreAssigned
func (s Scope) RequireStore() (uint, error) {
	if s.StoreID == nil || *s.StoreID == 0 {
		return 0, ErrNoStoreAssigned
	}
	return *s.StoreID, nil
}

// CanAccessStore 是否可访问指定店铺
func (s Scope) CanAccessStore(storeID uint) bool {
	if s.IsSuper() {
		return true
	}
	return s.StoreID != nil && *s.StoreID == storeID
}

// Apply 在查询上追加租户过滤条件
// 超级管理员不过滤；店铺管理员强制 store_id 等值约束；
// 未绑定店铺的主体得到恒假条件，查询结果为空
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.IsSuper() {
		return db
	}
	if s.StoreID == nil || *s.StoreID == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("store_id = ?", *s.StoreID)
}

// ApplyColumn 在查询上按指定列追加租户过滤条件（用于关联表别名）
func (s Scope) ApplyColumn(db *gorm.DB, column string) *gorm.DB {
	if s.IsSuper() {
		return db
	}
	if s.StoreID == nil || *s.StoreID == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(column+" = ?", *s.StoreID)
}
