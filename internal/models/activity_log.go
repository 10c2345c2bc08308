package models

import "time"

// ActivityLog 操作日志表（仅追加，不做软删除）
type ActivityLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`                          // 主键
	UserID      *uint     `gorm:"index" json:"user_id"`                          // 操作人（系统动作为空）
	StoreID     *uint     `gorm:"index" json:"store_id"`                         // 关联店铺（平台级动作为空）
	Action      string    `gorm:"type:varchar(100);not null;index" json:"action"` // 动作标识（store.created 等）
	Description string    `gorm:"type:varchar(500)" json:"description"`          // 人类可读描述
	SubjectType string    `gorm:"type:varchar(100);index" json:"subject_type"`   // 目标对象类型
	SubjectID   *uint     `gorm:"index" json:"subject_id"`                       // 目标对象ID
	IPAddress   string    `gorm:"type:varchar(64)" json:"ip_address"`            // 客户端IP
	UserAgent   string    `gorm:"type:varchar(500)" json:"user_agent"`           // UA
	Properties  JSON      `gorm:"type:json" json:"properties"`                   // 附加属性
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                       // 创建时间

	// 关联
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 操作人信息
	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"` // 店铺信息
}

// TableName 指定表名
func (ActivityLog) TableName() string {
	return "activity_logs"
}
