package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/service"
)

// GetStores 店铺列表（仅超级管理员）
func (h *Handler) GetStores(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	isActive, ok := parseBoolQuery(c, "is_active")
	if !ok {
		return
	}

	stores, total, err := h.StoreService.List(scope, page, c.Query("search"), isActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, stores, response.NewPagination(page, constants.StorePageSize, total))
}

// GetStore 店铺详情
func (h *Handler) GetStore(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.StoreService.Detail(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateStore 创建店铺（仅超级管理员）
func (h *Handler) CreateStore(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	store, err := h.StoreService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, store)
}

// UpdateStore 更新店铺
func (h *Handler) UpdateStore(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	store, err := h.StoreService.Update(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, store)
}

// DeleteStore 删除店铺及其全部数据（仅超级管理员）
func (h *Handler) DeleteStore(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.StoreService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
