package service

import (
	"errors"
	"testing"

	"github.com/storepanel/internal/repository"
)

func setupCustomerServiceTest(t *testing.T) (*serviceTestEnv, *CustomerService) {
	t.Helper()
	env := setupServiceTest(t)
	svc := NewCustomerService(env.customerRepo, env.orderRepo, env.activity)
	return env, svc
}

func TestCustomerCreateNormalizesEmail(t *testing.T) {
	env, svc := setupCustomerServiceTest(t)
	store := env.createStore(t, "central-market", 0)

	customer, err := svc.Create(storeScope(store.ID), CustomerInput{
		Name:  "Dana Wu",
		Email: "  Dana@Example.COM ",
		Phone: "+1-202-555-0111",
	}, testActor())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if customer.Email != "dana@example.com" {
		t.Fatalf("email want dana@example.com, got %s", customer.Email)
	}
	if customer.StoreID != store.ID {
		t.Fatalf("store id want %d, got %d", store.ID, customer.StoreID)
	}
}

func TestCustomerCreateDuplicatePhonePerStore(t *testing.T) {
	env, svc := setupCustomerServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)

	input := CustomerInput{Name: "Dana Wu", Email: "dana@example.com", Phone: "+1-202-555-0111"}
	if _, err := svc.Create(storeScope(store.ID), input, testActor()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(storeScope(store.ID), input, testActor()); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("want ErrPhoneExists, got %v", err)
	}
	// 电话唯一约束按店铺隔离
	if _, err := svc.Create(storeScope(other.ID), input, testActor()); err != nil {
		t.Fatalf("create in other store failed: %v", err)
	}

	// 同店允许重复邮箱，电话不同即可
	if _, err := svc.Create(storeScope(store.ID), CustomerInput{
		Name: "Dana Wu", Email: "dana@example.com", Phone: "+1-202-555-0112",
	}, testActor()); err != nil {
		t.Fatalf("create with duplicate email failed: %v", err)
	}

	// 缺少电话直接拒绝
	if _, err := svc.Create(storeScope(store.ID), CustomerInput{Name: "Gabe Lin"}, testActor()); err == nil {
		t.Fatalf("expected validation error for missing phone")
	}
}

func TestCustomerDeleteBlockedByOrders(t *testing.T) {
	env, svc := setupCustomerServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 10)

	orderSvc := NewOrderService(env.db, env.orderRepo, env.productRepo, env.customerRepo, env.storeRepo, env.activity)
	if _, err := orderSvc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, testActor()); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	err := svc.Delete(storeScope(store.ID), customer.ID, testActor())
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error for customer with orders, got %v", err)
	}
}

func TestCustomerListScopedToStore(t *testing.T) {
	env, svc := setupCustomerServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)
	env.createCustomer(t, store.ID, "dana@example.com")
	env.createCustomer(t, other.ID, "farah@example.com")

	_, total, err := svc.List(storeScope(store.ID), repository.CustomerListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("scoped total want 1, got %d", total)
	}

	// 跨店详情不可见
	outsider, err := svc.Get(superScope(), 2)
	if err != nil {
		t.Fatalf("super get failed: %v", err)
	}
	if _, err := svc.Get(storeScope(store.ID), outsider.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for cross-store get, got %v", err)
	}
}
