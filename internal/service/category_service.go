package service

import (
	"strings"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	activity     *ActivityService
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, activity *ActivityService) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, activity: activity}
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	StoreID     uint   `json:"store_id"`
	ParentID    *uint  `json:"parent_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// List 分类列表
func (s *CategoryService) List(scope authz.Scope, filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.categoryRepo.List(scope, filter)
}

// Get 分类详情
func (s *CategoryService) Get(scope authz.Scope, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(scope authz.Scope, input CategoryInput, actor Actor) (*models.Category, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(scope, storeID, input, nil); err != nil {
		return nil, err
	}

	category := &models.Category{
		StoreID:     storeID,
		ParentID:    input.ParentID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
		Image:       input.Image,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	categoryID := category.ID
	s.activity.Record(actor, &storeID, "category.created", "created category "+category.Name, "category", &categoryID, nil)
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(scope authz.Scope, id uint, input CategoryInput, actor Actor) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(scope, category.StoreID, input, &id); err != nil {
		return nil, err
	}

	category.ParentID = input.ParentID
	category.Name = strings.TrimSpace(input.Name)
	category.Slug = strings.TrimSpace(input.Slug)
	category.Description = input.Description
	category.Image = input.Image
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	storeID := category.StoreID
	s.activity.Record(actor, &storeID, "category.updated", "updated category "+category.Name, "category", &id, nil)
	return category, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(scope authz.Scope, id uint, actor Actor) error {
	category, err := s.categoryRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError(map[string]string{
			"category": "category still has products",
		})
	}
	children, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return NewValidationError(map[string]string{
			"category": "category still has subcategories",
		})
	}
	if err := s.categoryRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := category.StoreID
	s.activity.Record(actor, &storeID, "category.deleted", "deleted category "+category.Name, "category", &id, nil)
	return nil
}

func (s *CategoryService) validateInput(scope authz.Scope, storeID uint, input CategoryInput, excludeID *uint) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	// 上级分类须同店且自身不是子分类（仅允许一层嵌套）
	if input.ParentID != nil {
		if excludeID != nil && *input.ParentID == *excludeID {
			fields["parent_id"] = "category cannot be its own parent"
		} else {
			parent, err := s.categoryRepo.GetByID(scope, *input.ParentID)
			if err != nil {
				return err
			}
			switch {
			case parent == nil || parent.StoreID != storeID:
				fields["parent_id"] = "parent category not found in store"
			case parent.ParentID != nil:
				fields["parent_id"] = "nesting deeper than one level is not allowed"
			}
		}
	}
	slug := strings.TrimSpace(input.Slug)
	switch {
	case slug == "":
		fields["slug"] = "slug is required"
	case !slugPattern.MatchString(slug):
		fields["slug"] = "slug may only contain lowercase letters, numbers and hyphens"
	default:
		count, err := s.categoryRepo.CountBySlug(storeID, slug, excludeID)
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

// resolveTargetStore 解析写操作的目标店铺
// 店铺管理员固定落在本店；超级管理员需显式指定店铺
func resolveTargetStore(scope authz.Scope, requested uint) (uint, error) {
	if !scope.IsSuper() {
		return scope.RequireStore()
	}
	if requested == 0 {
		return 0, NewValidationError(map[string]string{
			"store_id": "store_id is required",
		})
	}
	return requested, nil
}
