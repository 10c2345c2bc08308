package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/storepanel/internal/constants"
)

const (
	// TaskNotificationDispatch 通知派发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
)

// NotificationDispatchPayload 通知派发任务载荷
type NotificationDispatchPayload struct {
	NotificationID uint `json:"notification_id"`
}

// NewNotificationDispatchTask 创建通知派发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}
