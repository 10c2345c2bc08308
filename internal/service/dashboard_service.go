package service

import (
	"fmt"
	"time"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

const (
	dashboardRecentStoresLimit   = 5
	dashboardRecentActivityLimit = 10
	dashboardStoreSummaryLimit   = 10
	dashboardTopProductsLimit    = 5
	dashboardRecentOrdersLimit   = 10
	dashboardLowStockListLimit   = 10
)

// DashboardService 仪表盘服务
// 按请求主体角色分派平台视图或单店视图，数据每次实时聚合
type DashboardService struct {
	repo         repository.DashboardRepository
	activityRepo repository.ActivityLogRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, activityRepo repository.ActivityLogRepository) *DashboardService {
	return &DashboardService{repo: repo, activityRepo: activityRepo}
}

// SuperAdminDashboard 平台仪表盘视图
type SuperAdminDashboard struct {
	View           string               `json:"view"`
	TotalStores    int64                `json:"total_stores"`
	ActiveStores   int64                `json:"active_stores"`
	TotalSales     string               `json:"total_sales"`
	TotalOrders    int64                `json:"total_orders"`
	ActiveOrders   int64                `json:"active_orders"`
	RecentStores   []models.Store       `json:"recent_stores"`
	RecentActivity []models.ActivityLog `json:"recent_activity"`
	Stores         []StoreSummary       `json:"stores"`
}

// StoreSummary 店铺经营摘要
type StoreSummary struct {
	StoreID     uint   `json:"store_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	IsActive    bool   `json:"is_active"`
	OrdersCount int64  `json:"orders_count"`
	SalesTotal  string `json:"sales_total"`
}

// StoreAdminDashboard 单店仪表盘视图
type StoreAdminDashboard struct {
	View            string           `json:"view"`
	StoreID         uint             `json:"store_id"`
	TotalRevenue    string           `json:"total_revenue"`
	MonthlyRevenue  string           `json:"monthly_revenue"`
	TotalOrders     int64            `json:"total_orders"`
	ActiveOrders    int64            `json:"active_orders"`
	LowStockCount   int64            `json:"low_stock_count"`
	ActiveCustomers int64            `json:"active_customers"`
	LowStock        []models.Product `json:"low_stock_products"`
	TopProducts     []ProductRanking `json:"top_products"`
	RecentOrders    []models.Order   `json:"recent_orders"`
}

// ProductRanking 商品销量排行项
type ProductRanking struct {
	ProductID   uint   `json:"product_id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	OrdersCount int64  `json:"orders_count"`
	Quantity    int64  `json:"quantity"`
}

// Render 按角色分派仪表盘视图
func (s *DashboardService) Render(scope authz.Scope) (interface{}, error) {
	if scope.IsSuper() {
		return s.renderSuperAdmin(scope)
	}
	return s.renderStoreAdmin(scope)
}

func (s *DashboardService) renderSuperAdmin(scope authz.Scope) (*SuperAdminDashboard, error) {
	totals, err := s.repo.GetPlatformTotals()
	if err != nil {
		return nil, err
	}
	recentStores, err := s.repo.GetRecentStores(dashboardRecentStoresLimit)
	if err != nil {
		return nil, err
	}
	recentActivity, err := s.activityRepo.Recent(scope, dashboardRecentActivityLimit)
	if err != nil {
		return nil, err
	}
	summaryRows, err := s.repo.GetStoreSummaries(dashboardStoreSummaryLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]StoreSummary, 0, len(summaryRows))
	for _, row := range summaryRows {
		summaries = append(summaries, StoreSummary{
			StoreID:     row.StoreID,
			Name:        row.Name,
			Slug:        row.Slug,
			IsActive:    row.IsActive,
			OrdersCount: row.OrdersCount,
			SalesTotal:  formatMoneyValue(row.SalesTotal),
		})
	}

	return &SuperAdminDashboard{
		View:           "super_admin",
		TotalStores:    totals.TotalStores,
		ActiveStores:   totals.ActiveStores,
		TotalSales:     formatMoneyValue(totals.TotalSales),
		TotalOrders:    totals.TotalOrders,
		ActiveOrders:   totals.ActiveOrders,
		RecentStores:   recentStores,
		RecentActivity: recentActivity,
		Stores:         summaries,
	}, nil
}

func (s *DashboardService) renderStoreAdmin(scope authz.Scope) (*StoreAdminDashboard, error) {
	storeID, err := scope.RequireStore()
	if err != nil {
		return nil, err
	}

	monthStart := currentMonthStart(time.Now())
	totals, err := s.repo.GetStoreTotals(storeID, monthStart)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.GetLowStockProducts(storeID, constants.LowStockThreshold, dashboardLowStockListLimit)
	if err != nil {
		return nil, err
	}
	topRows, err := s.repo.GetTopProducts(storeID, dashboardTopProductsLimit)
	if err != nil {
		return nil, err
	}
	recentOrders, err := s.repo.GetRecentOrders(storeID, dashboardRecentOrdersLimit)
	if err != nil {
		return nil, err
	}

	topProducts := make([]ProductRanking, 0, len(topRows))
	for _, row := range topRows {
		topProducts = append(topProducts, ProductRanking{
			ProductID:   row.ProductID,
			Name:        row.Name,
			SKU:         row.SKU,
			OrdersCount: row.OrdersCount,
			Quantity:    row.Quantity,
		})
	}

	return &StoreAdminDashboard{
		View:            "store_admin",
		StoreID:         storeID,
		TotalRevenue:    formatMoneyValue(totals.TotalRevenue),
		MonthlyRevenue:  formatMoneyValue(totals.MonthlyRevenue),
		TotalOrders:     totals.TotalOrders,
		ActiveOrders:    totals.ActiveOrders,
		LowStockCount:   totals.LowStockCount,
		ActiveCustomers: totals.ActiveCustomers,
		LowStock:        lowStock,
		TopProducts:     topProducts,
		RecentOrders:    recentOrders,
	}, nil
}

// currentMonthStart 返回本地时区内当月起点
func currentMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
