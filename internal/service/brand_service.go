package service

import (
	"strings"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// BrandService 品牌服务
type BrandService struct {
	brandRepo repository.BrandRepository
	activity  *ActivityService
}

// NewBrandService 创建品牌服务
func NewBrandService(brandRepo repository.BrandRepository, activity *ActivityService) *BrandService {
	return &BrandService{brandRepo: brandRepo, activity: activity}
}

// BrandInput 品牌创建/更新输入
type BrandInput struct {
	StoreID     uint   `json:"store_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// List 品牌列表
func (s *BrandService) List(scope authz.Scope, filter repository.BrandListFilter) ([]models.Brand, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.brandRepo.List(scope, filter)
}

// Get 品牌详情
func (s *BrandService) Get(scope authz.Scope, id uint) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	return brand, nil
}

// Create 创建品牌
func (s *BrandService) Create(scope authz.Scope, input BrandInput, actor Actor) (*models.Brand, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(storeID, input, nil); err != nil {
		return nil, err
	}

	brand := &models.Brand{
		StoreID:     storeID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
		Logo:        input.Logo,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}

	brandID := brand.ID
	s.activity.Record(actor, &storeID, "brand.created", "created brand "+brand.Name, "brand", &brandID, nil)
	return brand, nil
}

// Update 更新品牌
func (s *BrandService) Update(scope authz.Scope, id uint, input BrandInput, actor Actor) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(brand.StoreID, input, &id); err != nil {
		return nil, err
	}

	brand.Name = strings.TrimSpace(input.Name)
	brand.Slug = strings.TrimSpace(input.Slug)
	brand.Description = input.Description
	brand.Logo = input.Logo
	brand.SortOrder = input.SortOrder
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}

	storeID := brand.StoreID
	s.activity.Record(actor, &storeID, "brand.updated", "updated brand "+brand.Name, "brand", &id, nil)
	return brand, nil
}

// Delete 删除品牌
func (s *BrandService) Delete(scope authz.Scope, id uint, actor Actor) error {
	brand, err := s.brandRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrNotFound
	}
	count, err := s.brandRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError(map[string]string{
			"brand": "brand still has products",
		})
	}
	if err := s.brandRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := brand.StoreID
	s.activity.Record(actor, &storeID, "brand.deleted", "deleted brand "+brand.Name, "brand", &id, nil)
	return nil
}

func (s *BrandService) validateInput(storeID uint, input BrandInput, excludeID *uint) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	slug := strings.TrimSpace(input.Slug)
	switch {
	case slug == "":
		fields["slug"] = "slug is required"
	case !slugPattern.MatchString(slug):
		fields["slug"] = "slug may only contain lowercase letters, numbers and hyphens"
	default:
		count, err := s.brandRepo.CountBySlug(storeID, slug, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
