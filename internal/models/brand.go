package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand 品牌表（店铺维度）
type Brand struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	StoreID     uint           `gorm:"not null;index;uniqueIndex:idx_brands_store_slug" json:"store_id"` // 所属店铺
	Name        string         `gorm:"not null" json:"name"`                                     // 品牌名称
	Slug        string         `gorm:"not null;uniqueIndex:idx_brands_store_slug" json:"slug"`   // 店铺内唯一标识
	Description string         `gorm:"type:text" json:"description"`                             // 描述
	Logo        string         `gorm:"type:varchar(500)" json:"logo"`                            // 品牌 Logo
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                      // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                        // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
