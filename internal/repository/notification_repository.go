package repository

import (
	"errors"
	"time"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/constants"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 通知数据访问接口（店铺维度）
type NotificationRepository interface {
	List(scope authz.Scope, filter NotificationListFilter) ([]models.Notification, int64, error)
	GetByID(scope authz.Scope, id uint) (*models.Notification, error)
	Create(notification *models.Notification) error
	Update(notification *models.Notification) error
	Delete(scope authz.Scope, id uint) error
	MarkSent(id uint, sentAt time.Time, recipients, sent, failed int) error
	MarkFailed(id uint) error
	IncrementEngagement(id uint, column string) error
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// List 通知列表
func (r *GormNotificationRepository) List(scope authz.Scope, filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := scope.Apply(r.db.Model(&models.Notification{}))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Channel != "" {
		// channels 为 JSON 数组文本，按成员匹配
		query = query.Where("channels LIKE ?", "%\""+filter.Channel+"\"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// GetByID 根据 ID 获取通知
func (r *GormNotificationRepository) GetByID(scope authz.Scope, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := scope.Apply(r.db).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// Update 更新通知
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// Delete 删除通知
func (r *GormNotificationRepository) Delete(scope authz.Scope, id uint) error {
	return scope.Apply(r.db).Delete(&models.Notification{}, id).Error
}

// MarkSent 标记通知发送完成并记录计数
func (r *GormNotificationRepository) MarkSent(id uint, sentAt time.Time, recipients, sent, failed int) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           statusForCounts(sent, failed),
			"sent_at":          sentAt,
			"recipients_count": recipients,
			"sent_count":       sent,
			"failed_count":     failed,
		}).Error
}

// MarkFailed 标记通知发送失败
func (r *GormNotificationRepository) MarkFailed(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("status", constants.NotificationStatusFailed).Error
}

// IncrementEngagement 互动计数自增（只增不减）
func (r *GormNotificationRepository) IncrementEngagement(id uint, column string) error {
	if column != "opened_count" && column != "clicked_count" {
		return errors.New("unsupported engagement column")
	}
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func statusForCounts(sent, failed int) string {
	if sent == 0 && failed > 0 {
		return constants.NotificationStatusFailed
	}
	return constants.NotificationStatusSent
}
