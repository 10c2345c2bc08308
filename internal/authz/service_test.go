package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storepanel/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestBootstrapSuperAdminHasFullAccess(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetUserRole(1, models.RoleSuperAdmin.String()); err != nil {
		t.Fatalf("set user role failed: %v", err)
	}

	cases := []struct {
		obj string
		act string
	}{
		{"/api/v1/admin/stores", "POST"},
		{"/api/v1/admin/stores/7", "DELETE"},
		{"/api/v1/admin/users", "GET"},
		{"/api/v1/admin/activity-logs", "GET"},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceUser(1, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if !allow {
			t.Fatalf("expected allow for %s %s", tc.act, tc.obj)
		}
	}
}

func TestBootstrapStoreAdminPolicyBoundary(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetUserRole(2, models.RoleStoreAdmin.String()); err != nil {
		t.Fatalf("set user role failed: %v", err)
	}

	allowed := []struct {
		obj string
		act string
	}{
		{"/api/v1/admin/dashboard", "GET"},
		{"/api/v1/admin/products", "POST"},
		{"/api/v1/admin/products/9/stock", "PATCH"},
		{"/api/v1/admin/orders/3/status", "PATCH"},
		{"/api/v1/admin/stores/5", "PUT"},
		{"/api/v1/admin/stores/5", "PATCH"},
		{"/api/v1/admin/logout", "POST"},
	}
	for _, tc := range allowed {
		allow, err := svc.EnforceUser(2, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if !allow {
			t.Fatalf("expected allow for %s %s", tc.act, tc.obj)
		}
	}

	denied := []struct {
		obj string
		act string
	}{
		{"/api/v1/admin/stores", "POST"},
		{"/api/v1/admin/stores", "GET"},
		{"/api/v1/admin/stores/5", "DELETE"},
		{"/api/v1/admin/users", "GET"},
		{"/api/v1/admin/users/4", "PUT"},
	}
	for _, tc := range denied {
		allow, err := svc.EnforceUser(2, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if allow {
			t.Fatalf("expected deny for %s %s", tc.act, tc.obj)
		}
	}
}

func TestSetUserRoleReplacesPrevious(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetUserRole(3, models.RoleStoreAdmin.String()); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetUserRole(3, models.RoleSuperAdmin.String()); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}

	roles, err := svc.GetUserRoles(3)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != RoleSubject(models.RoleSuperAdmin.String()) {
		t.Fatalf("roles want [role:super_admin], got=%v", roles)
	}

	allow, err := svc.EnforceUser(3, "/api/v1/admin/stores", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow after role switch")
	}
}
