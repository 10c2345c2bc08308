package repository

import (
	"errors"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口（店铺维度）
type OrderRepository interface {
	List(scope authz.Scope, filter OrderListFilter) ([]models.Order, int64, error)
	GetByID(scope authz.Scope, id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	Create(order *models.Order, items []models.OrderItem) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	Delete(scope authz.Scope, id uint) error
	CountByCustomer(customerID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// List 订单列表
func (r *GormOrderRepository) List(scope authz.Scope, filter OrderListFilter) ([]models.Order, int64, error) {
	query := scope.Apply(r.db.Model(&models.Order{}))
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCustomer {
		query = query.Preload("Customer")
	}

	var orders []models.Order
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByID 根据 ID 获取订单（含顾客与订单项）
func (r *GormOrderRepository) GetByID(scope authz.Scope, id uint) (*models.Order, error) {
	var order models.Order
	query := scope.Apply(r.db).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product")
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单编号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStatus 更新订单状态及附带字段
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	values := map[string]interface{}{"status": status}
	for key, value := range updates {
		values[key] = value
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(values).Error
}

// Delete 删除订单及其订单项
func (r *GormOrderRepository) Delete(scope authz.Scope, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := scope.Apply(tx).Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
}

// CountByCustomer 统计顾客订单数
func (r *GormOrderRepository) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
