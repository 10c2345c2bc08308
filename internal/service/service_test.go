package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// serviceTestEnv 服务层测试共用环境
type serviceTestEnv struct {
	db           *gorm.DB
	storeRepo    repository.StoreRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	activityRepo repository.ActivityLogRepository
	activity     *ActivityService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
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
		t.Fatalf("migrate models failed: %v", err)
	}

	activityRepo := repository.NewActivityLogRepository(db)
	return &serviceTestEnv{
		db:           db,
		storeRepo:    repository.NewStoreRepository(db),
		productRepo:  repository.NewProductRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		brandRepo:    repository.NewBrandRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		activityRepo: activityRepo,
		activity:     NewActivityService(activityRepo),
	}
}

func superScope() authz.Scope {
	return authz.Scope{UserID: 1, Role: models.RoleSuperAdmin}
}

func storeScope(storeID uint) authz.Scope {
	return authz.Scope{UserID: 2, Role: models.RoleStoreAdmin, StoreID: &storeID}
}

func testActor() Actor {
	return Actor{UserID: 1, IP: "127.0.0.1", UserAgent: "test"}
}

func (env *serviceTestEnv) createStore(t *testing.T, slug string, vat float64) *models.Store {
	t.Helper()
	store := &models.Store{
		Name:          "Store " + slug,
		Slug:          slug,
		Currency:      "USD",
		VATPercentage: vat,
		Theme:         "light",
		DeliveryFee:   models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive:      true,
	}
	if err := env.db.Create(store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return store
}

func (env *serviceTestEnv) createProduct(t *testing.T, storeID uint, sku string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		StoreID:     storeID,
		Name:        "Product " + sku,
		Slug:        strings.ToLower(sku),
		SKU:         sku,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:       stock,
		IsAvailable: true,
	}
	if err := env.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (env *serviceTestEnv) createCustomer(t *testing.T, storeID uint, email string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		StoreID:  storeID,
		Name:     "Customer " + email,
		Email:    email,
		Phone:    "555-" + email,
		IsActive: true,
	}
	if err := env.db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}
