package service

import (
	"errors"
	"testing"

	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

func setupOrderServiceTest(t *testing.T) (*serviceTestEnv, *OrderService) {
	t.Helper()
	env := setupServiceTest(t)
	svc := NewOrderService(env.db, env.orderRepo, env.productRepo, env.customerRepo, env.storeRepo, env.activity)
	return env, svc
}

func TestOrderCreateComputesTotalsAndDecrementsStock(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 10)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	apple := env.createProduct(t, store.ID, "SKU-APPLE", 10, 20)
	egg := env.createProduct(t, store.ID, "SKU-EGG", 5.5, 8)

	order, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductID: apple.ID, Quantity: 2},
			{ProductID: egg.ID, Quantity: 1},
		},
		PaymentMethod: "cash",
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending, got %s", order.Status)
	}
	if order.Subtotal.String() != "25.50" {
		t.Fatalf("subtotal want 25.50, got %s", order.Subtotal.String())
	}
	if order.VATAmount.String() != "2.55" {
		t.Fatalf("vat want 2.55, got %s", order.VATAmount.String())
	}
	if order.DeliveryFee.String() != "5.00" {
		t.Fatalf("delivery fee want 5.00, got %s", order.DeliveryFee.String())
	}
	if order.TotalAmount.String() != "33.05" {
		t.Fatalf("total want 33.05, got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("items want 2, got %d", len(order.Items))
	}

	var reloaded models.Product
	if err := env.db.First(&reloaded, apple.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 18 {
		t.Fatalf("apple stock want 18, got %d", reloaded.Stock)
	}
}

func TestOrderCreateAppliesDiscount(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 10)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	apple := env.createProduct(t, store.ID, "SKU-APPLE", 10, 20)

	discount, err := models.NewMoneyFromString("3.05")
	if err != nil {
		t.Fatalf("parse discount failed: %v", err)
	}
	order, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID:     customer.ID,
		Items:          []OrderItemInput{{ProductID: apple.ID, Quantity: 2}},
		DiscountAmount: &discount,
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 20.00 + 2.00 税 + 5.00 配送 - 3.05 优惠
	if order.DiscountAmount.String() != "3.05" {
		t.Fatalf("discount want 3.05, got %s", order.DiscountAmount.String())
	}
	if order.TotalAmount.String() != "23.95" {
		t.Fatalf("total want 23.95, got %s", order.TotalAmount.String())
	}

	// 负优惠与超额优惠都拒绝
	negative, _ := models.NewMoneyFromString("-1.00")
	if _, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID:     customer.ID,
		Items:          []OrderItemInput{{ProductID: apple.ID, Quantity: 1}},
		DiscountAmount: &negative,
	}, testActor()); err == nil {
		t.Fatalf("expected validation error for negative discount")
	}
	excessive, _ := models.NewMoneyFromString("100.00")
	if _, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID:     customer.ID,
		Items:          []OrderItemInput{{ProductID: apple.ID, Quantity: 1}},
		DiscountAmount: &excessive,
	}, testActor()); err == nil {
		t.Fatalf("expected validation error for discount above total")
	}
}

func TestOrderCreateEnforcesQuantityBounds(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	apple := env.createProduct(t, store.ID, "SKU-APPLE", 10, 20)
	if err := env.db.Model(apple).Updates(map[string]interface{}{
		"minimum_quantity": 2, "maximum_per_order": 3,
	}).Error; err != nil {
		t.Fatalf("set quantity bounds failed: %v", err)
	}

	for _, quantity := range []int{1, 4} {
		if _, err := svc.Create(storeScope(store.ID), OrderInput{
			CustomerID: customer.ID,
			Items:      []OrderItemInput{{ProductID: apple.ID, Quantity: quantity}},
		}, testActor()); err == nil {
			t.Fatalf("expected validation error for quantity %d", quantity)
		}
	}

	if _, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: apple.ID, Quantity: 2}},
	}, testActor()); err != nil {
		t.Fatalf("create within bounds failed: %v", err)
	}
}

func TestOrderCreateUsesSalePrice(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-BEAN", 20, 10)
	sale, err := models.NewMoneyFromString("15.90")
	if err != nil {
		t.Fatalf("parse sale price failed: %v", err)
	}
	if err := env.db.Model(product).Update("sale_price", sale).Error; err != nil {
		t.Fatalf("set sale price failed: %v", err)
	}

	order, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Subtotal.String() != "31.80" {
		t.Fatalf("subtotal want 31.80, got %s", order.Subtotal.String())
	}
	if order.Items[0].UnitPrice.String() != "15.90" {
		t.Fatalf("unit price want 15.90, got %s", order.Items[0].UnitPrice.String())
	}
}

func TestOrderCreateRejectsInsufficientStock(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 3)

	_, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 4}},
	}, testActor())
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error, got %v", err)
	}

	var reloaded models.Product
	if err := env.db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 3 {
		t.Fatalf("stock must be untouched, got %d", reloaded.Stock)
	}
}

func TestOrderCreateRejectsCrossStoreCustomer(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)
	outsider := env.createCustomer(t, other.ID, "farah@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 10)

	_, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: outsider.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, testActor())
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestOrderStatusMachineRejectsSkips(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 10)

	order, err := svc.Create(storeScope(store.ID), OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	scope := storeScope(store.ID)
	if _, err := svc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: constants.OrderStatusDelivered}, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus for pending->delivered, got %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCompleted,
	} {
		if _, err := svc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: status}, testActor()); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	if _, err := svc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: constants.OrderStatusCanceled}, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus for completed->canceled, got %v", err)
	}

	var customerRow models.Customer
	if err := env.db.First(&customerRow, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if customerRow.TotalOrders != 1 {
		t.Fatalf("customer total orders want 1, got %d", customerRow.TotalOrders)
	}
	if customerRow.TotalSpent.String() != "10.00" {
		t.Fatalf("customer total spent want 10.00, got %s", customerRow.TotalSpent.String())
	}
}

func TestOrderCancelRestoresStock(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 10)

	scope := storeScope(store.ID)
	order, err := svc.Create(scope, OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 4}},
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	canceled, err := svc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: constants.OrderStatusCanceled}, testActor())
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.CanceledAt == nil {
		t.Fatalf("expected canceled_at set")
	}

	var reloaded models.Product
	if err := env.db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 10 {
		t.Fatalf("stock want restored to 10, got %d", reloaded.Stock)
	}
}

func TestOrderDeleteOnlyCanceled(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	product := env.createProduct(t, store.ID, "SKU-EGG", 5, 10)

	scope := storeScope(store.ID)
	order, err := svc.Create(scope, OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Delete(scope, order.ID, testActor()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus deleting pending order, got %v", err)
	}
	if _, err := svc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: constants.OrderStatusCanceled}, testActor()); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := svc.Delete(scope, order.ID, testActor()); err != nil {
		t.Fatalf("delete canceled order failed: %v", err)
	}
	if _, err := svc.Get(scope, order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestOrderListScopedToStore(t *testing.T) {
	env, svc := setupOrderServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	other := env.createStore(t, "bayside-coffee", 0)

	for _, s := range []*models.Store{store, other} {
		customer := env.createCustomer(t, s.ID, "buyer@"+s.Slug+".test")
		product := env.createProduct(t, s.ID, "SKU-"+s.Slug, 5, 10)
		if _, err := svc.Create(storeScope(s.ID), OrderInput{
			CustomerID: customer.ID,
			Items:      []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		}, testActor()); err != nil {
			t.Fatalf("create order for %s failed: %v", s.Slug, err)
		}
	}

	_, total, err := svc.List(storeScope(store.ID), repository.OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("store admin order total want 1, got %d", total)
	}

	_, total, err = svc.List(superScope(), repository.OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("super list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("super order total want 2, got %d", total)
	}
}
