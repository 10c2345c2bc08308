package authz

import (
	"fmt"

	"github.com/storepanel/internal/models"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// super_admin 放行全部后台路由；store_admin 仅放行本店业务路由，
// 店铺数据隔离在仓储 Scope 层二次约束
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: models.RoleSuperAdmin.String(),
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: models.RoleStoreAdmin.String(),
			Policies: []Policy{
				{Object: "/admin/dashboard", Action: "GET"},
				{Object: "/admin/logout", Action: "POST"},
				{Object: "/admin/profile", Action: "GET"},
				{Object: "/admin/profile", Action: "PUT"},
				{Object: "/admin/password", Action: "PUT"},
				{Object: "/admin/stores/:id", Action: "GET"},
				{Object: "/admin/stores/:id", Action: "PUT"},
				{Object: "/admin/stores/:id", Action: "PATCH"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/brands", Action: "*"},
				{Object: "/admin/brands/:id", Action: "*"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/stock", Action: "PATCH"},
				{Object: "/admin/customers", Action: "*"},
				{Object: "/admin/customers/:id", Action: "*"},
				{Object: "/admin/orders", Action: "*"},
				{Object: "/admin/orders/:id", Action: "*"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/notifications", Action: "*"},
				{Object: "/admin/notifications/:id", Action: "*"},
				{Object: "/admin/notifications/:id/send", Action: "POST"},
				{Object: "/admin/notifications/:id/track", Action: "POST"},
				{Object: "/admin/activity-logs", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
