package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// GetCustomers 顾客列表
func (h *Handler) GetCustomers(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))

	customers, total, err := h.CustomerService.List(scope, repository.CustomerListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: onlyActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, customers, response.NewPagination(page, pageSize, total))
}

// GetCustomer 顾客详情
func (h *Handler) GetCustomer(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.CustomerService.Get(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// CreateCustomer 创建顾客
func (h *Handler) CreateCustomer(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	customer, err := h.CustomerService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer 更新顾客
func (h *Handler) UpdateCustomer(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	customer, err := h.CustomerService.Update(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, customer)
}

// DeleteCustomer 删除顾客（有订单时拒绝）
func (h *Handler) DeleteCustomer(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CustomerService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
