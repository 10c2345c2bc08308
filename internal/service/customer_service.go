package service

import (
	"strings"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// CustomerService 顾客服务
type CustomerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	activity     *ActivityService
}

// NewCustomerService 创建顾客服务
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	activity *ActivityService,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		activity:     activity,
	}
}

// CustomerInput 顾客创建/更新输入
type CustomerInput struct {
	StoreID  uint   `json:"store_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"is_active"`
}

// List 顾客列表
func (s *CustomerService) List(scope authz.Scope, filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.customerRepo.List(scope, filter)
}

// Get 顾客详情
func (s *CustomerService) Get(scope authz.Scope, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// Create 创建顾客
func (s *CustomerService) Create(scope authz.Scope, input CustomerInput, actor Actor) (*models.Customer, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(storeID, input, nil); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		StoreID:  storeID,
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Address:  strings.TrimSpace(input.Address),
		Notes:    input.Notes,
		IsActive: true,
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	customerID := customer.ID
	s.activity.Record(actor, &storeID, "customer.created", "created customer "+customer.Name, "customer", &customerID, nil)
	return customer, nil
}

// Update 更新顾客
func (s *CustomerService) Update(scope authz.Scope, id uint, input CustomerInput, actor Actor) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(customer.StoreID, input, &id); err != nil {
		return nil, err
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Email = normalizeEmail(input.Email)
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Address = strings.TrimSpace(input.Address)
	customer.Notes = input.Notes
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	storeID := customer.StoreID
	s.activity.Record(actor, &storeID, "customer.updated", "updated customer "+customer.Name, "customer", &id, nil)
	return customer, nil
}

// Delete 删除顾客（存在订单时禁止删除）
func (s *CustomerService) Delete(scope authz.Scope, id uint, actor Actor) error {
	customer, err := s.customerRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrNotFound
	}

	orderCount, err := s.orderRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return NewValidationError(map[string]string{
			"customer": "customer has orders and cannot be deleted",
		})
	}

	if err := s.customerRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := customer.StoreID
	s.activity.Record(actor, &storeID, "customer.deleted", "deleted customer "+customer.Name, "customer", &id, nil)
	return nil
}

func (s *CustomerService) validateInput(storeID uint, input CustomerInput, excludeID *uint) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		fields["phone"] = "phone is required"
	} else {
		count, err := s.customerRepo.CountByPhone(storeID, phone, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrPhoneExists
		}
	}
	if email := normalizeEmail(input.Email); email != "" && !emailPattern.MatchString(email) {
		fields["email"] = "invalid email format"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
