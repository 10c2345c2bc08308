package service

import (
	"strings"
	"time"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/queue"
	"github.com/storepanel/internal/repository"
)

// NotificationService 店铺通知服务
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	customerRepo     repository.CustomerRepository
	queueClient      *queue.Client
	activity         *ActivityService
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	customerRepo repository.CustomerRepository,
	queueClient *queue.Client,
	activity *ActivityService,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		customerRepo:     customerRepo,
		queueClient:      queueClient,
		activity:         activity,
	}
}

// NotificationInput 通知创建/更新输入
type NotificationInput struct {
	StoreID        uint       `json:"store_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	Channels       []string   `json:"channels"`
	TargetAudience string     `json:"target_audience"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
}

// List 通知列表
func (s *NotificationService) List(scope authz.Scope, filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.notificationRepo.List(scope, filter)
}

// Get 通知详情
func (s *NotificationService) Get(scope authz.Scope, id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	return notification, nil
}

// Create 创建通知（草稿）
func (s *NotificationService) Create(scope authz.Scope, input NotificationInput, actor Actor) (*models.Notification, error) {
	storeID, err := resolveTargetStore(scope, input.StoreID)
	if err != nil {
		return nil, err
	}
	if err := validateNotificationInput(input); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		StoreID:        storeID,
		Title:          strings.TrimSpace(input.Title),
		Body:           input.Body,
		Channels:       models.StringArray(input.Channels),
		TargetAudience: audienceOrDefault(input.TargetAudience),
		Status:         constants.NotificationStatusDraft,
		ScheduledAt:    input.ScheduledAt,
		CreatedBy:      actor.UserID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	notificationID := notification.ID
	s.activity.Record(actor, &storeID, "notification.created", "created notification "+notification.Title, "notification", &notificationID, nil)
	return notification, nil
}

// Update 更新通知（仅草稿可改）
func (s *NotificationService) Update(scope authz.Scope, id uint, input NotificationInput, actor Actor) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	if notification.Status != constants.NotificationStatusDraft {
		return nil, ErrInvalidStatus
	}
	if err := validateNotificationInput(input); err != nil {
		return nil, err
	}

	notification.Title = strings.TrimSpace(input.Title)
	notification.Body = input.Body
	notification.Channels = models.StringArray(input.Channels)
	notification.TargetAudience = audienceOrDefault(input.TargetAudience)
	notification.ScheduledAt = input.ScheduledAt
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, err
	}

	storeID := notification.StoreID
	s.activity.Record(actor, &storeID, "notification.updated", "updated notification "+notification.Title, "notification", &id, nil)
	return notification, nil
}

// Delete 删除通知（已发送的不可删）
func (s *NotificationService) Delete(scope authz.Scope, id uint, actor Actor) error {
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.Status == constants.NotificationStatusSent {
		return ErrInvalidStatus
	}
	if err := s.notificationRepo.Delete(scope, id); err != nil {
		return err
	}

	storeID := notification.StoreID
	s.activity.Record(actor, &storeID, "notification.deleted", "deleted notification "+notification.Title, "notification", &id, nil)
	return nil
}

// Send 触发发送：启用队列时入队（支持定时），否则同步派发
func (s *NotificationService) Send(scope authz.Scope, id uint, actor Actor) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	if notification.Status == constants.NotificationStatusSent {
		return nil, ErrInvalidStatus
	}

	storeID := notification.StoreID
	s.activity.Record(actor, &storeID, "notification.sent", "sent notification "+notification.Title, "notification", &id, nil)

	if s.queueClient.Enabled() {
		delay := time.Duration(0)
		if notification.ScheduledAt != nil {
			delay = time.Until(*notification.ScheduledAt)
		}
		payload := queue.NotificationDispatchPayload{NotificationID: id}
		if err := s.queueClient.EnqueueNotificationDispatch(payload, delay); err != nil {
			return nil, err
		}
		notification.Status = constants.NotificationStatusScheduled
		if err := s.notificationRepo.Update(notification); err != nil {
			return nil, err
		}
		return notification, nil
	}

	if err := s.Dispatch(id); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetByID(scope, id)
}

// Track 互动事件计数（仅已发送的通知接受上报）
func (s *NotificationService) Track(scope authz.Scope, id uint, event string) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	if notification.Status != constants.NotificationStatusSent {
		return nil, ErrInvalidStatus
	}

	var column string
	switch strings.TrimSpace(event) {
	case "opened":
		column = "opened_count"
	case "clicked":
		column = "clicked_count"
	default:
		return nil, NewValidationError(map[string]string{
			"event": "event must be opened or clicked",
		})
	}
	if err := s.notificationRepo.IncrementEngagement(id, column); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetByID(scope, id)
}

// Dispatch 实际派发：统计店铺活跃顾客并记录发送结果（队列消费者也走这里）
func (s *NotificationService) Dispatch(id uint) error {
	scope := authz.SystemScope()
	notification, err := s.notificationRepo.GetByID(scope, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.Status == constants.NotificationStatusSent {
		return nil
	}

	storeScope := authz.ScopeForStore(notification.StoreID)
	_, total, err := s.customerRepo.List(storeScope, repository.CustomerListFilter{
		Page:       1,
		PageSize:   1,
		OnlyActive: notification.TargetAudience == constants.NotificationAudienceActive,
	})
	if err != nil {
		if markErr := s.notificationRepo.MarkFailed(id); markErr != nil {
			logger.Errorw("mark notification failed", "id", id, "error", markErr)
		}
		return err
	}

	recipients := int(total)
	logger.Infow("dispatching notification",
		"id", id,
		"store_id", notification.StoreID,
		"channels", []string(notification.Channels),
		"audience", notification.TargetAudience,
		"recipients", recipients,
	)
	return s.notificationRepo.MarkSent(id, time.Now(), recipients, recipients, 0)
}

func audienceOrDefault(audience string) string {
	if strings.TrimSpace(audience) == "" {
		return constants.NotificationAudienceAll
	}
	return audience
}

func validateNotificationInput(input NotificationInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Body) == "" {
		fields["body"] = "body is required"
	}
	if len(input.Channels) == 0 {
		fields["channels"] = "at least one channel is required"
	}
	for _, channel := range input.Channels {
		switch channel {
		case constants.NotificationChannelApp, constants.NotificationChannelEmail, constants.NotificationChannelSMS:
		default:
			fields["channels"] = "invalid channel " + channel
		}
	}
	switch audienceOrDefault(input.TargetAudience) {
	case constants.NotificationAudienceAll, constants.NotificationAudienceActive:
	default:
		fields["target_audience"] = "invalid target audience"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
