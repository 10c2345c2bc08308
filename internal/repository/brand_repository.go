package repository

import (
	"errors"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口（店铺维度）
type BrandRepository interface {
	List(scope authz.Scope, filter BrandListFilter) ([]models.Brand, int64, error)
	GetByID(scope authz.Scope, id uint) (*models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(scope authz.Scope, id uint) error
	CountBySlug(storeID uint, slug string, excludeID *uint) (int64, error)
	CountProducts(brandID uint) (int64, error)
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// List 品牌列表
func (r *GormBrandRepository) List(scope authz.Scope, filter BrandListFilter) ([]models.Brand, int64, error) {
	query := scope.Apply(r.db.Model(&models.Brand{}))
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var brands []models.Brand
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("sort_order DESC, id ASC").
		Find(&brands).Error; err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// GetByID 根据 ID 获取品牌
func (r *GormBrandRepository) GetByID(scope authz.Scope, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := scope.Apply(r.db).First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// Update 更新品牌
func (r *GormBrandRepository) Update(brand *models.Brand) error {
	return r.db.Save(brand).Error
}

// Delete 删除品牌
func (r *GormBrandRepository) Delete(scope authz.Scope, id uint) error {
	return scope.Apply(r.db).Delete(&models.Brand{}, id).Error
}

// CountBySlug 统计店铺内 slug 占用数量
func (r *GormBrandRepository) CountBySlug(storeID uint, slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Brand{}).Where("store_id = ? AND slug = ?", storeID, slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountProducts 统计品牌下商品数
func (r *GormBrandRepository) CountProducts(brandID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
