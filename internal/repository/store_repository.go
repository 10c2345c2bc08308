package repository

import (
	"errors"

	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// StoreCounts 店铺维度的从属数据计数
type StoreCounts struct {
	Orders    int64 `json:"orders"`
	Products  int64 `json:"products"`
	Customers int64 `json:"customers"`
}

// StoreRepository 店铺数据访问接口
type StoreRepository interface {
	List(filter StoreListFilter) ([]models.Store, int64, error)
	GetByID(id uint) (*models.Store, error)
	GetDetail(id uint) (*models.Store, error)
	GetBySlug(slug string) (*models.Store, error)
	Counts(storeID uint) (StoreCounts, error)
	RecentOrders(storeID uint, limit int) ([]models.Order, error)
	RecentProducts(storeID uint, limit int) ([]models.Product, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	DeleteCascade(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountUsers(storeID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormStoreRepository
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStoreRepository) WithTx(tx *gorm.DB) *GormStoreRepository {
	if tx == nil {
		return r
	}
	return &GormStoreRepository{db: tx}
}

// List 店铺列表（最新创建在前）
func (r *GormStoreRepository) List(filter StoreListFilter) ([]models.Store, int64, error) {
	query := r.db.Model(&models.Store{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []models.Store
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("Users").
		Order("created_at DESC, id DESC").
		Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// GetByID 根据 ID 获取店铺
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetDetail 店铺详情（含管理员）
func (r *GormStoreRepository) GetDetail(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.Preload("Users").First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Counts 店铺从属数据计数
func (r *GormStoreRepository) Counts(storeID uint) (StoreCounts, error) {
	var counts StoreCounts
	if err := r.db.Model(&models.Order{}).Where("store_id = ?", storeID).Count(&counts.Orders).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Product{}).Where("store_id = ?", storeID).Count(&counts.Products).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.Customer{}).Where("store_id = ?", storeID).Count(&counts.Customers).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// RecentOrders 店铺最近订单（含顾客）
func (r *GormStoreRepository) RecentOrders(storeID uint, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("store_id = ?", storeID).
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// RecentProducts 店铺最近商品
func (r *GormStoreRepository) RecentProducts(storeID uint, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("store_id = ?", storeID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// GetBySlug 根据 slug 获取店铺
func (r *GormStoreRepository) GetBySlug(slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("slug = ?", slug).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Create 创建店铺
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新店铺
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// DeleteCascade 删除店铺及全部从属数据
// 订单项经由订单级联；管理员账号保留但解除店铺绑定
func (r *GormStoreRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("store_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Brand{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("store_id = ?", id).Update("store_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Store{}, id).Error
	})
}

// CountBySlug 统计 slug 数量
func (r *GormStoreRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Store{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUsers 统计店铺下的管理员数
func (r *GormStoreRepository) CountUsers(storeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("store_id = ?", storeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
