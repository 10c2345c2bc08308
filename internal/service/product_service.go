package service

import (
	"strings"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	activity     *ActivityService
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	activity *ActivityService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		activity:     activity,
	}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	StoreID     uint                     `json:"store_id"`
	CategoryID  *uint                    `json:"category_id"`
	BrandID     *uint                    `json:"brand_id"`
	Name        string                   `json:"name"`
	Slug        string                   `json:"slug"`
	SKU         string                   `json:"sku"`
	Barcode     string                   `json:"barcode"`
	Description string                   `json:"description"`
	Price       *models.Money            `json:"price"`
	SalePrice   *models.Money            `json:"sale_price"`
	Stock       *int                     `json:"stock"`
	MinQuantity *int                     `json:"minimum_quantity"`
	MaxPerOrder *int                     `json:"maximum_per_order"`
	IsAvailable *bool                    `json:"is_available"`
	IsFeatured  *bool                    `json:"is_featured"`
	IsVisible   *bool                    `json:"is_visible"`
	Images      models.StringArray       `json:"images"`
	Tags        models.StringArray       `json:"tags"`
	Attributes  models.ProductAttributes `json:"attributes"`
	SortOrder   int                      `json:"sort_order"`
}

// List 商品列表
func (s *ProductService) List(scope authz.Scope, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	filter.WithRelated = true
	return s.productRepo.List(scope, filter)
}

// Get 商品详情
func (s *ProductService) Get(scope authz.Scope, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(scope authz.Scope, input ProductInput, actor Actor) (*models.Product, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(scope, storeID, input, nil); err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:     storeID,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		SKU:         strings.TrimSpace(input.SKU),
		Barcode:     strings.TrimSpace(input.Barcode),
		Description: input.Description,
		SalePrice:   input.SalePrice,
		Images:      input.Images,
		Tags:        input.Tags,
		Attributes:  input.Attributes,
		MinQuantity: 1,
		MaxPerOrder: input.MaxPerOrder,
		IsAvailable: true,
		IsVisible:   true,
		SortOrder:   input.SortOrder,
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.MinQuantity != nil {
		product.MinQuantity = *input.MinQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	productID := product.ID
	s.activity.Record(actor, &storeID, "product.created", "created product "+product.Name, "product", &productID, models.JSON{
		"sku": product.SKU,
	})
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(scope authz.Scope, id uint, input ProductInput, actor Actor) (*models.Product, error) {
	product, err := s.productRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(scope, product.StoreID, input, &id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.Name = strings.TrimSpace(input.Name)
	product.Slug = strings.TrimSpace(input.Slug)
	product.SKU = strings.TrimSpace(input.SKU)
	product.Barcode = strings.TrimSpace(input.Barcode)
	product.Description = input.Description
	product.SalePrice = input.SalePrice
	product.MaxPerOrder = input.MaxPerOrder
	product.SortOrder = input.SortOrder
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.MinQuantity != nil {
		product.MinQuantity = *input.MinQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.Attributes != nil {
		product.Attributes = input.Attributes
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	storeID := product.StoreID
	s.activity.Record(actor, &storeID, "product.updated", "updated product "+product.Name, "product", &id, nil)
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(scope authz.Scope, id uint, actor Actor) error {
	product, err := s.productRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.productRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := product.StoreID
	s.activity.Record(actor, &storeID, "product.deleted", "deleted product "+product.Name, "product", &id, models.JSON{
		"sku": product.SKU,
	})
	return nil
}

// AdjustStock 调整库存
func (s *ProductService) AdjustStock(scope authz.Scope, id uint, delta int, actor Actor) (*models.Product, error) {
	product, err := s.productRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.Stock+delta < 0 {
		return nil, NewValidationError(map[string]string{
			"stock": "stock cannot go negative",
		})
	}
	if err := s.productRepo.AdjustStock(id, delta); err != nil {
		return nil, err
	}

	storeID := product.StoreID
	s.activity.Record(actor, &storeID, "product.stock_adjusted", "adjusted stock of "+product.Name, "product", &id, models.JSON{
		"delta": delta,
	})
	return s.productRepo.GetByID(scope, id)
}

func (s *ProductService) validateInput(scope authz.Scope, storeID uint, input ProductInput, excludeID *uint) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		fields["sku"] = "sku is required"
	} else {
		count, err := s.productRepo.CountBySKU(storeID, sku, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSKUExists
		}
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		count, err := s.productRepo.CountBySlug(storeID, slug, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}
	if input.Price == nil || input.Price.IsNegative() {
		fields["price"] = "price must be zero or positive"
	}
	if input.SalePrice != nil && input.SalePrice.IsNegative() {
		fields["sale_price"] = "sale price must be zero or positive"
	}
	if input.Stock != nil && *input.Stock < 0 {
		fields["stock"] = "stock must be zero or positive"
	}
	minQty := 1
	if input.MinQuantity != nil {
		minQty = *input.MinQuantity
		if minQty < 1 {
			fields["minimum_quantity"] = "minimum quantity must be at least 1"
		}
	}
	if input.MaxPerOrder != nil && *input.MaxPerOrder < minQty {
		fields["maximum_per_order"] = "maximum per order cannot be below minimum quantity"
	}

	// 分类与品牌必须属于同一店铺
	if input.CategoryID != nil && *input.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(scope, *input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil || category.StoreID != storeID {
			fields["category_id"] = "category not found in store"
		}
	}
	if input.BrandID != nil && *input.BrandID > 0 {
		brand, err := s.brandRepo.GetByID(scope, *input.BrandID)
		if err != nil {
			return err
		}
		if brand == nil || brand.StoreID != storeID {
			fields["brand_id"] = "brand not found in store"
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
