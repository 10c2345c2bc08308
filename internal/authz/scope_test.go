package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/storepanel/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupScopeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate products failed: %v", err)
	}
	for storeID := uint(1); storeID <= 2; storeID++ {
		for i := 0; i < 3; i++ {
			product := &models.Product{
				StoreID: storeID,
				Name:    fmt.Sprintf("product-%d-%d", storeID, i),
				Slug:    fmt.Sprintf("product-%d-%d", storeID, i),
				SKU:     fmt.Sprintf("SKU-%d-%d", storeID, i),
			}
			if err := db.Create(product).Error; err != nil {
				t.Fatalf("create product failed: %v", err)
			}
		}
	}
	return db
}

func TestScopeApplyFiltersByStore(t *testing.T) {
	db := setupScopeTestDB(t)

	storeID := uint(1)
	scope := Scope{UserID: 10, Role: models.RoleStoreAdmin, StoreID: &storeID}
	var count int64
	if err := scope.Apply(db.Model(&models.Product{})).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("store admin count want 3, got %d", count)
	}
}

func TestScopeApplySuperSeesAll(t *testing.T) {
	db := setupScopeTestDB(t)

	scope := Scope{UserID: 1, Role: models.RoleSuperAdmin}
	var count int64
	if err := scope.Apply(db.Model(&models.Product{})).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 6 {
		t.Fatalf("super admin count want 6, got %d", count)
	}
}

func TestScopeApplyUnboundStoreAdminSeesNothing(t *testing.T) {
	db := setupScopeTestDB(t)

	scope := Scope{UserID: 11, Role: models.RoleStoreAdmin}
	var count int64
	if err := scope.Apply(db.Model(&models.Product{})).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("unbound store admin count want 0, got %d", count)
	}
}

func TestScopeRequireStore(t *testing.T) {
	storeID := uint(5)
	bound := Scope{Role: models.RoleStoreAdmin, StoreID: &storeID}
	got, err := bound.RequireStore()
	if err != nil {
		t.Fatalf("require store failed: %v", err)
	}
	if got != 5 {
		t.Fatalf("store id want 5, got %d", got)
	}

	unbound := Scope{Role: models.RoleStoreAdmin}
	if _, err := unbound.RequireStore(); !errors.Is(err, ErrNoStoreAssigned) {
		t.Fatalf("want ErrNoStoreAssigned, got %v", err)
	}
}

func TestScopeCanAccessStore(t *testing.T) {
	storeID := uint(2)
	admin := Scope{Role: models.RoleStoreAdmin, StoreID: &storeID}
	if !admin.CanAccessStore(2) {
		t.Fatalf("expected access to own store")
	}
	if admin.CanAccessStore(3) {
		t.Fatalf("expected no access to other store")
	}

	super := Scope{Role: models.RoleSuperAdmin}
	if !super.CanAccessStore(3) {
		t.Fatalf("expected super admin access to any store")
	}
}
