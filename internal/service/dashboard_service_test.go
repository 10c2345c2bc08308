package service

import (
	"errors"
	"testing"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

func setupDashboardServiceTest(t *testing.T) (*serviceTestEnv, *DashboardService) {
	t.Helper()
	env := setupServiceTest(t)
	svc := NewDashboardService(repository.NewDashboardRepository(env.db), env.activityRepo)
	return env, svc
}

func TestDashboardDispatchesByRole(t *testing.T) {
	env, svc := setupDashboardServiceTest(t)
	store := env.createStore(t, "central-market", 0)

	view, err := svc.Render(superScope())
	if err != nil {
		t.Fatalf("render super failed: %v", err)
	}
	superView, ok := view.(*SuperAdminDashboard)
	if !ok {
		t.Fatalf("want *SuperAdminDashboard, got %T", view)
	}
	if superView.View != "super_admin" {
		t.Fatalf("view want super_admin, got %s", superView.View)
	}
	if superView.TotalStores != 1 {
		t.Fatalf("total stores want 1, got %d", superView.TotalStores)
	}

	view, err = svc.Render(storeScope(store.ID))
	if err != nil {
		t.Fatalf("render store admin failed: %v", err)
	}
	storeView, ok := view.(*StoreAdminDashboard)
	if !ok {
		t.Fatalf("want *StoreAdminDashboard, got %T", view)
	}
	if storeView.View != "store_admin" || storeView.StoreID != store.ID {
		t.Fatalf("unexpected store view: %+v", storeView)
	}
}

func TestDashboardUnboundStoreAdmin(t *testing.T) {
	_, svc := setupDashboardServiceTest(t)

	_, err := svc.Render(authz.Scope{UserID: 9, Role: models.RoleStoreAdmin})
	if !errors.Is(err, authz.ErrNoStoreAssigned) {
		t.Fatalf("want ErrNoStoreAssigned, got %v", err)
	}
}

func TestDashboardStoreAdminTotals(t *testing.T) {
	env, svc := setupDashboardServiceTest(t)
	store := env.createStore(t, "central-market", 0)
	customer := env.createCustomer(t, store.ID, "dana@example.com")
	env.createProduct(t, store.ID, "SKU-LOW", 5, 2)

	orderSvc := NewOrderService(env.db, env.orderRepo, env.productRepo, env.customerRepo, env.storeRepo, env.activity)
	hot := env.createProduct(t, store.ID, "SKU-HOT", 10, 50)
	scope := storeScope(store.ID)
	order, err := orderSvc.Create(scope, OrderInput{
		CustomerID: customer.ID,
		Items:      []OrderItemInput{{ProductID: hot.ID, Quantity: 3}},
	}, testActor())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for _, status := range []string{
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	} {
		if _, err := orderSvc.UpdateStatus(scope, order.ID, OrderStatusInput{Status: status}, testActor()); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	view, err := svc.Render(scope)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	storeView := view.(*StoreAdminDashboard)
	if storeView.TotalOrders != 1 || storeView.ActiveOrders != 0 {
		t.Fatalf("orders want 1/0, got %d/%d", storeView.TotalOrders, storeView.ActiveOrders)
	}
	// 30.00 商品小计 + 5.00 配送费
	if storeView.TotalRevenue != "35.00" {
		t.Fatalf("total revenue want 35.00, got %s", storeView.TotalRevenue)
	}
	if storeView.LowStockCount != 1 {
		t.Fatalf("low stock count want 1, got %d", storeView.LowStockCount)
	}
	if storeView.ActiveCustomers != 1 {
		t.Fatalf("active customers want 1, got %d", storeView.ActiveCustomers)
	}
	if len(storeView.TopProducts) == 0 || storeView.TopProducts[0].SKU != "SKU-HOT" {
		t.Fatalf("expected SKU-HOT as top product, got %+v", storeView.TopProducts)
	}
}
