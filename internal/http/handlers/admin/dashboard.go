package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
)

// GetDashboard 按角色返回仪表盘数据
func (h *Handler) GetDashboard(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	data, err := h.DashboardService.Render(scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, data)
}
