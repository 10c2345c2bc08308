package repository

import (
	"time"

	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则；按角色拆分平台侧与店铺侧两组查询。
type DashboardRepository interface {
	// 平台侧（超级管理员）
	GetPlatformTotals() (PlatformTotalsRow, error)
	GetRecentStores(limit int) ([]models.Store, error)
	GetStoreSummaries(limit int) ([]StoreSummaryRow, error)

	// 店铺侧（店铺管理员）
	GetStoreTotals(storeID uint, monthStart time.Time) (StoreTotalsRow, error)
	GetLowStockProducts(storeID uint, threshold, limit int) ([]models.Product, error)
	GetTopProducts(storeID uint, limit int) ([]ProductRankingRow, error)
	GetRecentOrders(storeID uint, limit int) ([]models.Order, error)
}

// PlatformTotalsRow 平台总览原始统计结果
type PlatformTotalsRow struct {
	TotalStores  int64
	ActiveStores int64
	TotalSales   float64
	TotalOrders  int64
	ActiveOrders int64
}

// StoreSummaryRow 店铺经营摘要原始行
type StoreSummaryRow struct {
	StoreID     uint
	Name        string
	Slug        string
	IsActive    bool
	OrdersCount int64
	SalesTotal  float64
}

// StoreTotalsRow 单店总览原始统计结果
type StoreTotalsRow struct {
	TotalRevenue    float64
	MonthlyRevenue  float64
	TotalOrders     int64
	ActiveOrders    int64
	LowStockCount   int64
	ActiveCustomers int64
}

// ProductRankingRow 商品销量排行原始行
type ProductRankingRow struct {
	ProductID   uint
	Name        string
	SKU         string
	OrdersCount int64
	Quantity    int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetPlatformTotals 获取平台总览统计
func (r *GormDashboardRepository) GetPlatformTotals() (PlatformTotalsRow, error) {
	result := PlatformTotalsRow{}

	if err := r.db.Model(&models.Store{}).Count(&result.TotalStores).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Store{}).Where("is_active = ?", true).Count(&result.ActiveStores).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status IN ?", constants.SalesOrderStatuses()).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalSales).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status IN ?", constants.ActiveOrderStatuses()).
		Count(&result.ActiveOrders).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetRecentStores 最近创建的店铺（含管理员）
func (r *GormDashboardRepository) GetRecentStores(limit int) ([]models.Store, error) {
	if limit <= 0 {
		limit = 5
	}
	var stores []models.Store
	if err := r.db.Model(&models.Store{}).
		Preload("Users").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// GetStoreSummaries 店铺经营摘要（订单数与销售额按完成类状态聚合）
func (r *GormDashboardRepository) GetStoreSummaries(limit int) ([]StoreSummaryRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]StoreSummaryRow, 0)
	if err := r.db.Model(&models.Store{}).
		Select(`
			stores.id as store_id,
			stores.name as name,
			stores.slug as slug,
			stores.is_active as is_active,
			COUNT(orders.id) as orders_count,
			COALESCE(SUM(CASE WHEN orders.status IN ? THEN orders.total_amount ELSE 0 END), 0) as sales_total
		`, constants.SalesOrderStatuses()).
		Joins("LEFT JOIN orders ON orders.store_id = stores.id AND orders.deleted_at IS NULL").
		Group("stores.id, stores.name, stores.slug, stores.is_active").
		Order("stores.created_at DESC, stores.id DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStoreTotals 获取单店总览统计
func (r *GormDashboardRepository) GetStoreTotals(storeID uint, monthStart time.Time) (StoreTotalsRow, error) {
	result := StoreTotalsRow{}

	revenueBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("store_id = ? AND status IN ?", storeID, constants.SalesOrderStatuses())
	}

	if err := revenueBase().
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error; err != nil {
		return result, err
	}
	if err := revenueBase().
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.MonthlyRevenue).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("store_id = ?", storeID).
		Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("store_id = ? AND status IN ?", storeID, constants.ActiveOrderStatuses()).
		Count(&result.ActiveOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("store_id = ? AND is_available = ? AND stock <= ?", storeID, true, constants.LowStockThreshold).
		Count(&result.LowStockCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Customer{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&result.ActiveCustomers).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetLowStockProducts 低库存商品列表
func (r *GormDashboardRepository) GetLowStockProducts(storeID uint, threshold, limit int) ([]models.Product, error) {
	if threshold <= 0 {
		threshold = constants.LowStockThreshold
	}
	if limit <= 0 {
		limit = 10
	}
	var products []models.Product
	if err := r.db.Model(&models.Product{}).
		Where("store_id = ? AND is_available = ? AND stock <= ?", storeID, true, threshold).
		Order("stock ASC, id ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetTopProducts 商品销量排行（按订单项出现次数）
func (r *GormDashboardRepository) GetTopProducts(storeID uint, limit int) ([]ProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]ProductRankingRow, 0)
	if err := r.db.Model(&models.Product{}).
		Select(`
			products.id as product_id,
			products.name as name,
			products.sku as sku,
			COUNT(order_items.id) as orders_count,
			COALESCE(SUM(order_items.quantity), 0) as quantity
		`).
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Where("products.store_id = ?", storeID).
		Group("products.id, products.name, products.sku").
		Order("orders_count DESC, quantity DESC, products.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRecentOrders 最近订单（含顾客与订单项商品）
func (r *GormDashboardRepository) GetRecentOrders(storeID uint, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var orders []models.Order
	if err := r.db.Model(&models.Order{}).
		Where("store_id = ?", storeID).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
