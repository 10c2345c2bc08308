package repository

import (
	"errors"
	"time"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 顾客数据访问接口（店铺维度）
type CustomerRepository interface {
	List(scope authz.Scope, filter CustomerListFilter) ([]models.Customer, int64, error)
	GetByID(scope authz.Scope, id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(scope authz.Scope, id uint) error
	CountByPhone(storeID uint, phone string, excludeID *uint) (int64, error)
	RecalcAggregates(customerID uint) error
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// List 顾客列表
func (r *GormCustomerRepository) List(scope authz.Scope, filter CustomerListFilter) ([]models.Customer, int64, error) {
	query := scope.Apply(r.db.Model(&models.Customer{}))
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("id DESC").
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// GetByID 根据 ID 获取顾客
func (r *GormCustomerRepository) GetByID(scope authz.Scope, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := scope.Apply(r.db).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新顾客
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete 删除顾客
func (r *GormCustomerRepository) Delete(scope authz.Scope, id uint) error {
	return scope.Apply(r.db).Delete(&models.Customer{}, id).Error
}

// CountByPhone 统计店铺内电话占用数量
func (r *GormCustomerRepository) CountByPhone(storeID uint, phone string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Customer{}).Where("store_id = ? AND phone = ?", storeID, phone)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecalcAggregates 基于完成订单重算顾客累计指标
// 订单完成/取消等状态变更后调用，保持派生值与订单表一致
func (r *GormCustomerRepository) RecalcAggregates(customerID uint) error {
	type aggRow struct {
		TotalOrders int64
		TotalSpent  float64
		LastOrderAt *time.Time
	}
	var row aggRow
	if err := r.db.Model(&models.Order{}).
		Select("COUNT(*) as total_orders, COALESCE(SUM(total_amount), 0) as total_spent, MAX(created_at) as last_order_at").
		Where("customer_id = ? AND status IN ?", customerID, constants.SalesOrderStatuses()).
		Scan(&row).Error; err != nil {
		return err
	}

	return r.db.Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_orders":  row.TotalOrders,
			"total_spent":   row.TotalSpent,
			"last_order_at": row.LastOrderAt,
		}).Error
}
