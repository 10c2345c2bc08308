package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/http/response"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// GetNotifications 通知列表
func (h *Handler) GetNotifications(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)

	notifications, total, err := h.NotificationService.List(scope, repository.NotificationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Channel:  c.Query("channel"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.SuccessWithPage(c, notifications, response.NewPagination(page, pageSize, total))
}

// GetNotification 通知详情
func (h *Handler) GetNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.NotificationService.Get(scope, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}

// CreateNotification 创建通知
func (h *Handler) CreateNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}

	var input service.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	notification, err := h.NotificationService.Create(scope, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}

// UpdateNotification 更新通知（仅草稿）
func (h *Handler) UpdateNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	notification, err := h.NotificationService.Update(scope, id, input, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}

// DeleteNotification 删除通知（已发送的拒绝）
func (h *Handler) DeleteNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.NotificationService.Delete(scope, id, actorFrom(c, scope)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// TrackNotification 上报通知互动事件（opened/clicked）
func (h *Handler) TrackNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Event string `json:"event"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	notification, err := h.NotificationService.Track(scope, id, input.Event)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}

// SendNotification 触发通知发送
func (h *Handler) SendNotification(c *gin.Context) {
	scope, ok := getScope(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.NotificationService.Send(scope, id, actorFrom(c, scope))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notification)
}
