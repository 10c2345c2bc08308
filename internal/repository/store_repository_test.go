package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storepanel/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStoreRepositoryTest(t *testing.T) (*GormStoreRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Store{}, &models.User{}, &models.Category{}, &models.Brand{},
		&models.Product{}, &models.Customer{}, &models.Order{},
		&models.OrderItem{}, &models.Notification{}, &models.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate store models failed: %v", err)
	}
	return NewStoreRepository(db), db
}

func TestStoreListPagination(t *testing.T) {
	repo, db := setupStoreRepositoryTest(t)

	for i := 1; i <= 25; i++ {
		store := &models.Store{
			Name:     fmt.Sprintf("Store %02d", i),
			Slug:     fmt.Sprintf("store-%02d", i),
			Currency: "USD",
			IsActive: true,
		}
		if err := db.Create(store).Error; err != nil {
			t.Fatalf("create store failed: %v", err)
		}
	}

	stores, total, err := repo.List(StoreListFilter{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("total want 25, got %d", total)
	}
	if len(stores) != 5 {
		t.Fatalf("last page size want 5, got %d", len(stores))
	}

	stores, _, err = repo.List(StoreListFilter{Page: 0, PageSize: 10})
	if err != nil {
		t.Fatalf("list with page 0 failed: %v", err)
	}
	if len(stores) != 10 {
		t.Fatalf("first page size want 10, got %d", len(stores))
	}
}

func TestStoreListSearchAndActiveFilter(t *testing.T) {
	repo, db := setupStoreRepositoryTest(t)

	seed := []models.Store{
		{Name: "Central Market", Slug: "central-market", Currency: "USD", IsActive: true},
		{Name: "Bayside Coffee", Slug: "bayside-coffee", Currency: "USD", IsActive: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("create store failed: %v", err)
		}
	}

	_, total, err := repo.List(StoreListFilter{Page: 1, PageSize: 10, Search: "central"})
	if err != nil {
		t.Fatalf("search list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search total want 1, got %d", total)
	}

	active := true
	_, total, err = repo.List(StoreListFilter{Page: 1, PageSize: 10, IsActive: &active})
	if err != nil {
		t.Fatalf("active list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("active total want 1, got %d", total)
	}
}

func TestStoreCountBySlugExcludesSelf(t *testing.T) {
	repo, db := setupStoreRepositoryTest(t)

	store := &models.Store{Name: "Central Market", Slug: "central-market", Currency: "USD", IsActive: true}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	count, err := repo.CountBySlug("central-market", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1, got %d", count)
	}

	count, err = repo.CountBySlug("central-market", &store.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclude want 0, got %d", count)
	}
}

func TestStoreDeleteCascadeUnbindsAdmins(t *testing.T) {
	repo, db := setupStoreRepositoryTest(t)

	store := &models.Store{Name: "Central Market", Slug: "central-market", Currency: "USD", IsActive: true}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	admin := &models.User{
		Name: "Alice", Email: "alice@example.com", PasswordHash: "x",
		Role: models.RoleStoreAdmin, StoreID: &store.ID, IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	product := &models.Product{StoreID: store.ID, Name: "P", Slug: "p", SKU: "P-1"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	customer := &models.Customer{StoreID: store.ID, Name: "Dana", Email: "dana@example.com", IsActive: true}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	order := &models.Order{
		StoreID: store.ID, CustomerID: customer.ID, OrderNo: "SO-1",
		Status: "pending", PaymentStatus: "pending", Currency: "USD",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := &models.OrderItem{OrderID: order.ID, ProductID: product.ID, ProductName: "P", Quantity: 1}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	log := &models.ActivityLog{UserID: &admin.ID, StoreID: &store.ID, Action: "order.created"}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("create activity log failed: %v", err)
	}

	if err := repo.DeleteCascade(store.ID); err != nil {
		t.Fatalf("delete cascade failed: %v", err)
	}

	got, err := repo.GetByID(store.ID)
	if err != nil {
		t.Fatalf("get store failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected store deleted")
	}

	var productCount, orderCount, itemCount, customerCount, logCount int64
	db.Model(&models.Product{}).Where("store_id = ?", store.ID).Count(&productCount)
	db.Model(&models.Order{}).Where("store_id = ?", store.ID).Count(&orderCount)
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	db.Model(&models.Customer{}).Where("store_id = ?", store.ID).Count(&customerCount)
	db.Model(&models.ActivityLog{}).Where("store_id = ?", store.ID).Count(&logCount)
	if productCount+orderCount+itemCount+customerCount+logCount != 0 {
		t.Fatalf("expected subordinate rows deleted, got %d/%d/%d/%d/%d",
			productCount, orderCount, itemCount, customerCount, logCount)
	}

	var reloaded models.User
	if err := db.First(&reloaded, admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.StoreID != nil {
		t.Fatalf("expected admin unbound from store, got %v", *reloaded.StoreID)
	}
}
