package models

import (
	"time"

	"gorm.io/gorm"
)

// Role 用户角色
type Role string

// 角色取值
const (
	RoleSuperAdmin Role = "super_admin" // 平台超级管理员
	RoleStoreAdmin Role = "store_admin" // 店铺管理员
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleStoreAdmin
}

// IsSuper 是否为超级管理员
func (r Role) IsSuper() bool {
	return r == RoleSuperAdmin
}

// String 返回角色字符串
func (r Role) String() string {
	return string(r)
}

// User 后台用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name               string         `gorm:"not null" json:"name"`                                      // 姓名
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`                         // 邮箱（登录账号）
	PasswordHash       string         `gorm:"not null" json:"-"`                                         // 密码哈希（不返回给前端）
	Role               Role           `gorm:"type:varchar(20);not null;index" json:"role"`               // 角色
	StoreID            *uint          `gorm:"index" json:"store_id"`                                     // 所属店铺（超级管理员为空）
	IsActive           bool           `gorm:"default:true" json:"is_active"`                             // 账号状态
	Permissions        StringArray    `gorm:"type:text" json:"permissions"`                              // 按用户回收的资源路径（覆盖角色策略）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                               // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                            // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                             // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"` // 所属店铺
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
