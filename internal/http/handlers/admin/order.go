package admin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// GetOrders 订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)

	createdFrom, ok := parseTimeQuery(c, "created_from")
	if !ok {
		return
	}
	createdTo, ok := parseTimeQuery(c, "created_to")
	if !ok {
		return
	}

	orders, total, err := h.OrderService.List(scope, repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		CustomerID:    parseUintQuery(c, "customer_id"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		OrderNo:       c.Query("order_no"),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	order, err := h.OrderService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.OrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 删除订单（仅已取消订单）
func (h *Handler) DeleteOrder(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// parseTimeQuery 解析 RFC3339 时间查询参数
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return nil, false
	}
	return &parsed, true
}
