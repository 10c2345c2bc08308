package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	websitePattern  = regexp.MustCompile(`^https?://\S+$`)
)

// StoreService 店铺服务
type StoreService struct {
	storeRepo repository.StoreRepository
	activity  *ActivityService
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, activity *ActivityService) *StoreService {
	return &StoreService{storeRepo: storeRepo, activity: activity}
}

// StoreInput 店铺创建/更新输入
type StoreInput struct {
	Name          string                `json:"name"`
	Slug          string                `json:"slug"`
	Description   string                `json:"description"`
	Logo          string                `json:"logo"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Whatsapp      string                `json:"whatsapp"`
	Website       string                `json:"website"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	State         string                `json:"state"`
	Country       string                `json:"country"`
	PostalCode    string                `json:"postal_code"`
	Latitude      *float64              `json:"latitude"`
	Longitude     *float64              `json:"longitude"`
	Currency      string                `json:"currency"`
	Timezone      string                `json:"timezone"`
	VATPercentage *float64              `json:"vat_percentage"`
	Theme         string                `json:"theme"`
	DeliveryFee   *models.Money         `json:"delivery_fee"`
	BusinessHours models.BusinessHours  `json:"business_hours"`
	DeliveryAreas models.DeliveryAreas  `json:"delivery_areas"`
	PaymentModes  models.PaymentMethods `json:"payment_methods"`
	SocialLinks   models.JSON           `json:"social_links"`
	Settings      models.JSON           `json:"settings"`
	IsActive      *bool                 `json:"is_active"`
}

// StoreListItem 店铺列表行，附带从属数据计数
type StoreListItem struct {
	models.Store
	Counts repository.StoreCounts `json:"counts"`
}

// List 店铺列表（仅超级管理员，固定每页条数，最新在前）
func (s *StoreService) List(scope authz.Scope, page int, search string, isActive *bool) ([]StoreListItem, int64, error) {
	if !scope.IsSuper() {
		return nil, 0, ErrForbidden
	}
	stores, total, err := s.storeRepo.List(repository.StoreListFilter{
		Page:     page,
		PageSize: constants.StorePageSize,
		Search:   strings.TrimSpace(search),
		IsActive: isActive,
	})
	if err != nil {
		return nil, 0, err
	}
	items := make([]StoreListItem, 0, len(stores))
	for _, store := range stores {
		counts, err := s.storeRepo.Counts(store.ID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, StoreListItem{Store: store, Counts: counts})
	}
	return items, total, nil
}

// Get 店铺详情
// 店铺管理员访问非本店时统一返回 ErrForbidden，不暴露店铺是否存在
func (s *StoreService) Get(scope authz.Scope, id uint) (*models.Store, error) {
	if !scope.CanAccessStore(id) {
		return nil, ErrForbidden
	}
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	return store, nil
}

// StoreDetail 店铺详情视图：基础信息、管理员、最近订单与商品、计数
type StoreDetail struct {
	Store          *models.Store          `json:"store"`
	RecentOrders   []models.Order         `json:"recent_orders"`
	RecentProducts []models.Product       `json:"recent_products"`
	Counts         repository.StoreCounts `json:"counts"`
}

// Detail 店铺详情（访问控制与 Get 一致）
func (s *StoreService) Detail(scope authz.Scope, id uint) (*StoreDetail, error) {
	if !scope.CanAccessStore(id) {
		return nil, ErrForbidden
	}
	store, err := s.storeRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}

	orders, err := s.storeRepo.RecentOrders(id, constants.StoreDetailRecentLimit)
	if err != nil {
		return nil, err
	}
	products, err := s.storeRepo.RecentProducts(id, constants.StoreDetailRecentLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.storeRepo.Counts(id)
	if err != nil {
		return nil, err
	}
	return &StoreDetail{
		Store:          store,
		RecentOrders:   orders,
		RecentProducts: products,
		Counts:         counts,
	}, nil
}

// Create 创建店铺（仅超级管理员）
func (s *StoreService) Create(scope authz.Scope, input StoreInput, actor Actor) (*models.Store, error) {
	if !scope.IsSuper() {
		return nil, ErrForbidden
	}
	if err := s.validateInput(input, nil); err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:          strings.TrimSpace(input.Name),
		Slug:          strings.TrimSpace(input.Slug),
		Description:   input.Description,
		Logo:          input.Logo,
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		Whatsapp:      strings.TrimSpace(input.Whatsapp),
		Website:       strings.TrimSpace(input.Website),
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Currency:      normalizeCurrency(input.Currency),
		Timezone:      normalizeTimezone(input.Timezone),
		Theme:         normalizeTheme(input.Theme),
		BusinessHours: input.BusinessHours,
		DeliveryAreas: input.DeliveryAreas,
		PaymentModes:  input.PaymentModes,
		SocialLinks:   input.SocialLinks,
		Settings:      input.Settings,
		IsActive:      true,
	}
	if input.VATPercentage != nil {
		store.VATPercentage = *input.VATPercentage
	}
	if input.DeliveryFee != nil {
		store.DeliveryFee = *input.DeliveryFee
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	storeID := store.ID
	s.activity.Record(actor, &storeID, "store.created", "created store "+store.Name, "store", &storeID, models.JSON{
		"slug": store.Slug,
	})
	return store, nil
}

// Update 更新店铺（超级管理员或本店管理员）
func (s *StoreService) Update(scope authz.Scope, id uint, input StoreInput, actor Actor) (*models.Store, error) {
	if !scope.CanAccessStore(id) {
		return nil, ErrForbidden
	}
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(input, &id); err != nil {
		return nil, err
	}

	store.Name = strings.TrimSpace(input.Name)
	store.Slug = strings.TrimSpace(input.Slug)
	store.Description = input.Description
	store.Logo = input.Logo
	store.Email = strings.TrimSpace(input.Email)
	store.Phone = strings.TrimSpace(input.Phone)
	store.Whatsapp = strings.TrimSpace(input.Whatsapp)
	store.Website = strings.TrimSpace(input.Website)
	store.Address = input.Address
	store.City = input.City
	store.State = input.State
	store.Country = input.Country
	store.PostalCode = input.PostalCode
	store.Latitude = input.Latitude
	store.Longitude = input.Longitude
	store.Currency = normalizeCurrency(input.Currency)
	store.Timezone = normalizeTimezone(input.Timezone)
	store.Theme = normalizeTheme(input.Theme)
	if input.VATPercentage != nil {
		store.VATPercentage = *input.VATPercentage
	}
	if input.DeliveryFee != nil {
		store.DeliveryFee = *input.DeliveryFee
	}
	if input.BusinessHours != nil {
		store.BusinessHours = input.BusinessHours
	}
	if input.DeliveryAreas != nil {
		store.DeliveryAreas = input.DeliveryAreas
	}
	if input.PaymentModes != nil {
		store.PaymentModes = input.PaymentModes
	}
	if input.SocialLinks != nil {
		store.SocialLinks = input.SocialLinks
	}
	if input.Settings != nil {
		store.Settings = input.Settings
	}
	if input.IsActive != nil {
		// 启停开关仅平台侧可操作
		if scope.IsSuper() {
			store.IsActive = *input.IsActive
		}
	}

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}

	storeID := store.ID
	s.activity.Record(actor, &storeID, "store.updated", "updated store "+store.Name, "store", &storeID, nil)
	return store, nil
}

// Delete 删除店铺及全部从属数据（仅超级管理员）
func (s *StoreService) Delete(scope authz.Scope, id uint, actor Actor) error {
	if !scope.IsSuper() {
		return ErrForbidden
	}
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNotFound
	}

	if err := s.storeRepo.DeleteCascade(id); err != nil {
		return err
	}

	s.activity.Record(actor, nil, "store.deleted", "deleted store "+store.Name, "store", &id, models.JSON{
		"slug": store.Slug,
	})
	return nil
}

func (s *StoreService) validateInput(input StoreInput, excludeID *uint) error {
	fields := map[string]string{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields["name"] = "name is required"
	} else if len(name) > 255 {
		fields["name"] = "name must not exceed 255 characters"
	}

	slug := strings.TrimSpace(input.Slug)
	switch {
	case slug == "":
		fields["slug"] = "slug is required"
	case !slugPattern.MatchString(slug):
		fields["slug"] = "slug may only contain lowercase letters, numbers and hyphens"
	default:
		count, err := s.storeRepo.CountBySlug(slug, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}

	if email := strings.TrimSpace(input.Email); email != "" && !emailPattern.MatchString(email) {
		fields["email"] = "email is invalid"
	}
	if website := strings.TrimSpace(input.Website); website != "" && !websitePattern.MatchString(website) {
		fields["website"] = "website must be an http(s) URL"
	}
	if timezone := strings.TrimSpace(input.Timezone); timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			fields["timezone"] = "unknown timezone"
		}
	}
	if currency := strings.TrimSpace(input.Currency); currency == "" || !currencyPattern.MatchString(currency) {
		fields["currency"] = "currency must be a 3-letter code"
	}
	if input.VATPercentage != nil && (*input.VATPercentage < 0 || *input.VATPercentage > 100) {
		fields["vat_percentage"] = "vat percentage must be between 0 and 100"
	}
	if theme := strings.TrimSpace(input.Theme); theme != "" &&
		theme != constants.StoreThemeLight && theme != constants.StoreThemeDark {
		fields["theme"] = "theme must be light or dark"
	}
	if input.DeliveryFee != nil && input.DeliveryFee.IsNegative() {
		fields["delivery_fee"] = "delivery fee must not be negative"
	}
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		fields["latitude"] = "latitude must be between -90 and 90"
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		fields["longitude"] = "longitude must be between -180 and 180"
	}
	for _, area := range input.DeliveryAreas {
		if strings.TrimSpace(area.Name) == "" {
			fields["delivery_areas"] = "delivery area name is required"
		}
		if area.Fee.IsNegative() {
			fields["delivery_areas"] = "delivery area fee must not be negative"
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func normalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func normalizeTimezone(timezone string) string {
	if timezone = strings.TrimSpace(timezone); timezone == "" {
		return "UTC"
	}
	return timezone
}

func normalizeTheme(theme string) string {
	normalized := strings.TrimSpace(theme)
	if normalized == "" {
		return constants.StoreThemeLight
	}
	return normalized
}
