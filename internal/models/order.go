package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	StoreID        uint           `gorm:"not null;index" json:"store_id"`                               // 所属店铺
	CustomerID     uint           `gorm:"not null;index" json:"customer_id"`                            // 顾客ID
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	Status         string         `gorm:"type:varchar(20);index;not null" json:"status"`                // 订单状态
	PaymentStatus  string         `gorm:"type:varchar(20);index;not null" json:"payment_status"`        // 支付状态
	PaymentMethod  string         `gorm:"type:varchar(50)" json:"payment_method"`                       // 支付方式标识
	Currency       string         `gorm:"type:varchar(3);not null" json:"currency"`                     // 币种
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	VATAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"vat_amount"`      // 税额
	DeliveryFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`    // 配送费
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 实付金额
	Notes          string         `gorm:"type:text" json:"notes"`                                       // 备注
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`                                    // 送达时间
	CompletedAt    *time.Time     `gorm:"index" json:"completed_at"`                                    // 完成时间
	CanceledAt     *time.Time     `json:"canceled_at"`                                                  // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 顾客信息
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
