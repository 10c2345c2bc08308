package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
)

// GetActivityLogs 操作日志列表
func (h *Handler) GetActivityLogs(c *gin.Context) {
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

	logs, total, err := h.ActivityService.List(scope, repository.ActivityLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      parseUintQuery(c, "user_id"),
		Action:      c.Query("action"),
		SubjectType: c.Query("subject_type"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
