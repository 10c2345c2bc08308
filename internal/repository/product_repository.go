package repository

import (
	"errors"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口（店铺维度）
type ProductRepository interface {
	List(scope authz.Scope, filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(scope authz.Scope, id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(scope authz.Scope, id uint) error
	CountBySKU(storeID uint, sku string, excludeID *uint) (int64, error)
	CountBySlug(storeID uint, slug string, excludeID *uint) (int64, error)
	AdjustStock(id uint, delta int) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List 商品列表
func (r *GormProductRepository) List(scope authz.Scope, filter ProductListFilter) ([]models.Product, int64, error) {
	query := scope.Apply(r.db.Model(&models.Product{}))
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BrandID > 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR barcode LIKE ?", like, like, like)
	}
	if filter.OnlyLowStock {
		query = query.Where("is_available = ? AND stock <= ?", true, constants.LowStockThreshold)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithRelated {
		query = query.Preload("Category").Preload("Brand")
	}

	var products []models.Product
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("sort_order DESC, id DESC").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(scope authz.Scope, id uint) (*models.Product, error) {
	var product models.Product
	query := scope.Apply(r.db).Preload("Category").Preload("Brand")
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(scope authz.Scope, id uint) error {
	return scope.Apply(r.db).Delete(&models.Product{}, id).Error
}

// CountBySKU 统计店铺内 SKU 占用数量
func (r *GormProductRepository) CountBySKU(storeID uint, sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("store_id = ? AND sku = ?", storeID, sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySlug 统计店铺内 slug 占用数量
func (r *GormProductRepository) CountBySlug(storeID uint, slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("store_id = ? AND slug = ?", storeID, slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AdjustStock 调整库存（delta 可为负，库存不足时不落库）
func (r *GormProductRepository) AdjustStock(id uint, delta int) error {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
