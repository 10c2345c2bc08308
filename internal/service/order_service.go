package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// orderTransitions 订单状态机：当前状态 -> 允许的下一状态
var orderTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCanceled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered},
	constants.OrderStatusDelivered:  {constants.OrderStatusCompleted},
	constants.OrderStatusCompleted:  {},
	constants.OrderStatusCanceled:   {},
}

// OrderService 订单服务
type OrderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	activity     *ActivityService
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	activity *ActivityService,
) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		activity:     activity,
	}
}

// OrderItemInput 订单项输入
type OrderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderInput 订单创建输入
type OrderInput struct {
	StoreID        uint             `json:"store_id"`
	CustomerID     uint             `json:"customer_id"`
	Items          []OrderItemInput `json:"items"`
	PaymentMethod  string           `json:"payment_method"`
	DeliveryFee    *models.Money    `json:"delivery_fee"`
	DiscountAmount *models.Money    `json:"discount_amount"`
	Notes          string           `json:"notes"`
}

// OrderStatusInput 订单状态更新输入
type OrderStatusInput struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// List 订单列表
func (s *OrderService) List(scope authz.Scope, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	filter.WithCustomer = true
	return s.orderRepo.List(scope, filter)
}

// Get 订单详情
func (s *OrderService) Get(scope authz.Scope, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// Create 创建订单：按店铺税率与配送费计算金额，快照商品名与单价，并扣减库存
func (s *OrderService) Create(scope authz.Scope, input OrderInput, actor Actor) (*models.Order, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNotFound
	}

	customer, err := s.customerRepo.GetByID(scope, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.StoreID != storeID {
		return nil, NewValidationError(map[string]string{
			"customer_id": "customer not found in store",
		})
	}

	if len(input.Items) == 0 {
		return nil, NewValidationError(map[string]string{
			"items": "at least one item is required",
		})
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for i, itemInput := range input.Items {
		if itemInput.Quantity <= 0 {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.quantity", i): "quantity must be positive",
			})
		}
		product, err := s.productRepo.GetByID(scope, itemInput.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.StoreID != storeID {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.product_id", i): "product not found in store",
			})
		}
		if !product.IsAvailable {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.product_id", i): "product is not available",
			})
		}
		if itemInput.Quantity < product.MinQuantity {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.quantity", i): "quantity below product minimum",
			})
		}
		if product.MaxPerOrder != nil && itemInput.Quantity > *product.MaxPerOrder {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.quantity", i): "quantity exceeds per-order limit",
			})
		}
		if product.Stock < itemInput.Quantity {
			return nil, NewValidationError(map[string]string{
				fmt.Sprintf("items.%d.quantity", i): "insufficient stock",
			})
		}

		unitPrice := product.EffectivePrice()
		lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(itemInput.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   unitPrice,
			Quantity:    itemInput.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}

	vatAmount := subtotal.Mul(decimal.NewFromFloat(store.VATPercentage)).Div(decimal.NewFromInt(100)).Round(2)
	deliveryFee := store.DeliveryFee
	if input.DeliveryFee != nil {
		if input.DeliveryFee.IsNegative() {
			return nil, NewValidationError(map[string]string{
				"delivery_fee": "delivery fee must be zero or positive",
			})
		}
		deliveryFee = *input.DeliveryFee
	}
	discount := models.NewMoneyFromDecimal(decimal.Zero)
	if input.DiscountAmount != nil {
		if input.DiscountAmount.IsNegative() {
			return nil, NewValidationError(map[string]string{
				"discount_amount": "discount must be zero or positive",
			})
		}
		discount = *input.DiscountAmount
	}
	total := subtotal.Add(vatAmount).Add(deliveryFee.Decimal).Sub(discount.Decimal)
	if total.IsNegative() {
		return nil, NewValidationError(map[string]string{
			"discount_amount": "discount exceeds order amount",
		})
	}

	order := &models.Order{
		StoreID:        storeID,
		CustomerID:     customer.ID,
		OrderNo:        generateOrderNo(),
		Status:         constants.OrderStatusPending,
		PaymentStatus:  constants.PaymentStatusPending,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		Currency:       store.Currency,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		VATAmount:      models.NewMoneyFromDecimal(vatAmount),
		DeliveryFee:    deliveryFee,
		DiscountAmount: discount,
		TotalAmount:    models.NewMoneyFromDecimal(total),
		Notes:          input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range items {
			if err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.RecalcAggregates(customer.ID); err != nil {
		return nil, err
	}

	orderID := order.ID
	s.activity.Record(actor, &storeID, "order.created", "created order "+order.OrderNo, "order", &orderID, models.JSON{
		"total_amount": order.TotalAmount.String(),
	})
	return s.orderRepo.GetByID(scope, order.ID)
}

// UpdateStatus 更新订单状态，校验状态机并处理附带动作
func (s *OrderService) UpdateStatus(scope authz.Scope, id uint, input OrderStatusInput, actor Actor) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	status := strings.TrimSpace(input.Status)
	updates := map[string]interface{}{}
	now := time.Now()

	if status != "" && status != order.Status {
		if !transitionAllowed(order.Status, status) {
			return nil, ErrInvalidStatus
		}
		switch status {
		case constants.OrderStatusDelivered:
			updates["delivered_at"] = now
		case constants.OrderStatusCompleted:
			updates["completed_at"] = now
		case constants.OrderStatusCanceled:
			updates["canceled_at"] = now
		}
	} else {
		status = order.Status
	}

	if input.PaymentStatus != "" {
		if !validPaymentStatus(input.PaymentStatus) {
			return nil, ErrInvalidStatus
		}
		updates["payment_status"] = input.PaymentStatus
	}

	if status == order.Status && len(updates) == 0 {
		return order, nil
	}

	if status == constants.OrderStatusCanceled {
		// 取消时回补库存
		err = s.db.Transaction(func(tx *gorm.DB) error {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return s.orderRepo.WithTx(tx).UpdateStatus(id, status, updates)
		})
	} else {
		err = s.orderRepo.UpdateStatus(id, status, updates)
	}
	if err != nil {
		return nil, err
	}

	// 完成或取消都会影响顾客累计指标
	if status == constants.OrderStatusCompleted || status == constants.OrderStatusCanceled || status == constants.OrderStatusDelivered {
		if err := s.customerRepo.RecalcAggregates(order.CustomerID); err != nil {
			return nil, err
		}
	}

	storeID := order.StoreID
	s.activity.Record(actor, &storeID, "order.status_updated", "updated status of order "+order.OrderNo, "order", &id, models.JSON{
		"from": order.Status,
		"to":   status,
	})
	return s.orderRepo.GetByID(scope, id)
}

// Delete 删除订单（仅已取消订单可删）
func (s *OrderService) Delete(scope authz.Scope, id uint, actor Actor) error {
	order, err := s.orderRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if order.Status != constants.OrderStatusCanceled {
		return NewValidationError(map[string]string{
			"status": "only canceled orders can be deleted",
		})
	}
	if err := s.orderRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := order.StoreID
	s.activity.Record(actor, &storeID, "order.deleted", "deleted order "+order.OrderNo, "order", &id, nil)
	return nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusPending, constants.PaymentStatusPaid, constants.PaymentStatusPartiallyPaid,
		constants.PaymentStatusRefunded, constants.PaymentStatusFailed:
		return true
	}
	return false
}

// generateOrderNo 生成订单编号：时间戳 + 随机后缀
func generateOrderNo() string {
	return fmt.Sprintf("SO%s%06d", time.Now().Format("20060102150405"), rand.Intn(1000000))
}
