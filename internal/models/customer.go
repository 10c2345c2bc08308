package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客表（店铺维度聚合）
type Customer struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                         // 主键
	StoreID     uint           `gorm:"not null;index;uniqueIndex:idx_customers_store_phone" json:"store_id"`         // 所属店铺
	Name        string         `gorm:"not null" json:"name"`                                                         // 姓名
	Email       string         `gorm:"index" json:"email"`                                                           // 邮箱（可空）
	Phone       string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_customers_store_phone" json:"phone"` // 电话（店铺内唯一）
	Address     string         `gorm:"type:varchar(500)" json:"address"`                                             // 地址
	City        string         `gorm:"type:varchar(100)" json:"city"`                                                // 城市
	Notes       string         `gorm:"type:text" json:"notes"`                                                       // 备注
	TotalOrders int            `gorm:"not null;default:0" json:"total_orders"`                                       // 累计完成订单数（派生值）
	TotalSpent  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_spent"`                     // 累计消费金额（派生值）
	LastOrderAt *time.Time     `json:"last_order_at"`                                                                // 最近下单时间
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                                          // 是否活跃
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                                      // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                               // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
