package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 店铺表
type Store struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name          string         `gorm:"not null" json:"name"`                                      // 店铺名称
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Description   string         `gorm:"type:text" json:"description"`                              // 店铺简介
	Logo          string         `gorm:"type:varchar(500)" json:"logo"`                             // Logo 图片路径
	Email         string         `gorm:"type:varchar(255)" json:"email"`                            // 联系邮箱
	Phone         string         `gorm:"type:varchar(50)" json:"phone"`                             // 联系电话
	Whatsapp      string         `gorm:"type:varchar(50)" json:"whatsapp"`                          // WhatsApp 号码
	Website       string         `gorm:"type:varchar(255)" json:"website"`                          // 官网地址
	Address       string         `gorm:"type:varchar(500)" json:"address"`                          // 地址
	City          string         `gorm:"type:varchar(100)" json:"city"`                             // 城市
	State         string         `gorm:"type:varchar(100)" json:"state"`                            // 省/州
	Country       string         `gorm:"type:varchar(100)" json:"country"`                          // 国家
	PostalCode    string         `gorm:"type:varchar(20)" json:"postal_code"`                       // 邮编
	Latitude      *float64       `json:"latitude"`                                                  // 纬度
	Longitude     *float64       `json:"longitude"`                                                 // 经度
	Currency      string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`    // 币种（ISO 4217）
	Timezone      string         `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`   // 时区（IANA 名称）
	VATPercentage float64        `gorm:"not null;default:0" json:"vat_percentage"`                  // 增值税率（0-100）
	Theme         string         `gorm:"type:varchar(20);not null;default:'light'" json:"theme"`    // 前台主题（light/dark）
	DeliveryFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // 默认配送费
	BusinessHours BusinessHours  `gorm:"type:json" json:"business_hours"`                           // 营业时间
	DeliveryAreas DeliveryAreas  `gorm:"type:json" json:"delivery_areas"`                           // 配送区域
	PaymentModes  PaymentMethods `gorm:"type:json;column:payment_methods" json:"payment_methods"`   // 支付方式配置
	SocialLinks   JSON           `gorm:"type:json" json:"social_links"`                             // 社交媒体链接
	Settings      JSON           `gorm:"type:json" json:"settings"`                                 // 其他店铺配置
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                       // 是否启用
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Users []User `gorm:"foreignKey:StoreID" json:"users,omitempty"` // 店铺管理员
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
