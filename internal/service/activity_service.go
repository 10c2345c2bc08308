package service

import (
	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
)

// Actor 操作主体元信息（用于审计落库）
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

// ActivityService 操作日志服务
// 写入失败只记日志不中断主流程
type ActivityService struct {
	repo repository.ActivityLogRepository
}

// NewActivityService 创建操作日志服务
func NewActivityService(repo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record 写入一条操作日志
func (s *ActivityService) Record(actor Actor, storeID *uint, action, description, subjectType string, subjectID *uint, props models.JSON) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &models.ActivityLog{
		StoreID:     storeID,
		Action:      action,
		Description: description,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
		Properties:  props,
	}
	if actor.UserID > 0 {
		userID := actor.UserID
		entry.UserID = &userID
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Warnw("activity_log_write_failed", "action", action, "error", err)
	}
}

// List 查询操作日志
func (s *ActivityService) List(scope authz.Scope, filter repository.ActivityLogListFilter) ([]models.ActivityLog, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.repo.List(scope, filter)
}

// Recent 查询最近操作日志
func (s *ActivityService) Recent(scope authz.Scope, limit int) ([]models.ActivityLog, error) {
	return s.repo.Recent(scope, limit)
}
