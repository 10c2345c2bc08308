package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))

	categories, total, err := h.CategoryService.List(scope, repository.CategoryListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: onlyActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.CategoryService.Get(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	category, err := h.CategoryService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	category, err := h.CategoryService.Update(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（有商品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
