package repository

import (
	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository 操作日志数据访问接口
type ActivityLogRepository interface {
	Create(log *models.ActivityLog) error
	List(scope authz.Scope, filter ActivityLogListFilter) ([]models.ActivityLog, int64, error)
	Recent(scope authz.Scope, limit int) ([]models.ActivityLog, error)
}

// GormActivityLogRepository GORM 实现
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建操作日志仓库
func NewActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create 写入操作日志
func (r *GormActivityLogRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

// List 操作日志列表
func (r *GormActivityLogRepository) List(scope authz.Scope, filter ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	query := scope.Apply(r.db.Model(&models.ActivityLog{}))
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.SubjectType != "" {
		query = query.Where("subject_type = ?", filter.SubjectType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Preload("User").
		Preload("Store").
		Order("created_at DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Recent 最近操作日志（含操作人与店铺）
func (r *GormActivityLogRepository) Recent(scope authz.Scope, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []models.ActivityLog
	if err := scope.Apply(r.db.Model(&models.ActivityLog{})).
		Preload("User").
		Preload("Store").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
