package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// GetBrands 品牌列表
func (h *Handler) GetBrands(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))

	brands, total, err := h.BrandService.List(scope, repository.BrandListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: onlyActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, brands, response.NewPagination(page, pageSize, total))
}

// GetBrand 品牌详情
func (h *Handler) GetBrand(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := h.BrandService.Get(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	brand, err := h.BrandService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	brand, err := h.BrandService.Update(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, brand)
}

// DeleteBrand 删除品牌（有商品时拒绝）
func (h *Handler) DeleteBrand(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.BrandService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
