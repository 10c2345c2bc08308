package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表（店铺维度）
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                 // 主键
	StoreID     uint           `gorm:"not null;index;uniqueIndex:idx_categories_store_slug" json:"store_id"` // 所属店铺
	ParentID    *uint          `gorm:"index" json:"parent_id"`                                               // 上级分类（仅支持一层嵌套）
	Name        string         `gorm:"not null" json:"name"`                                                 // 分类名称
	Slug        string         `gorm:"not null;uniqueIndex:idx_categories_store_slug" json:"slug"`           // 店铺内唯一标识
	Description string         `gorm:"type:text" json:"description"`                                         // 描述
	Image       string         `gorm:"type:varchar(500)" json:"image"`                                       // 分类图片
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                                  // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                                    // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                       // 软删除时间

	// 关联
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`   // 上级分类
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"` // 下级分类
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
