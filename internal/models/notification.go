package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 店铺通知表
type Notification struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                           // 主键
	StoreID         uint           `gorm:"not null;index" json:"store_id"`                                 // 所属店铺
	Title           string         `gorm:"not null" json:"title"`                                          // 标题
	Body            string         `gorm:"type:text;not null" json:"body"`                                 // 内容
	Channels        StringArray    `gorm:"type:json;not null" json:"channels"`                             // 发送渠道（app/email/sms 子集）
	TargetAudience  string         `gorm:"type:varchar(20);not null;default:'all'" json:"target_audience"` // 目标人群（all/active）
	CreatedBy       uint           `gorm:"index" json:"created_by"`                                        // 创建人
	Status          string         `gorm:"type:varchar(20);not null;index" json:"status"`                  // 状态（draft/scheduled/sent/failed）
	ScheduledAt     *time.Time     `gorm:"index" json:"scheduled_at"`                                      // 计划发送时间
	SentAt          *time.Time     `json:"sent_at"`                                                        // 实际发送时间
	RecipientsCount int            `gorm:"not null;default:0" json:"recipients_count"`                     // 目标人数
	SentCount       int            `gorm:"not null;default:0" json:"sent_count"`                           // 成功数
	FailedCount     int            `gorm:"not null;default:0" json:"failed_count"`                         // 失败数
	OpenedCount     int            `gorm:"not null;default:0" json:"opened_count"`                         // 打开次数
	ClickedCount    int            `gorm:"not null;default:0" json:"clicked_count"`                        // 点击次数
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                     // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
