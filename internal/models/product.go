package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint              `gorm:"primarykey" json:"id"`                                                                                  // 主键
	StoreID     uint              `gorm:"not null;index;uniqueIndex:idx_products_store_sku;uniqueIndex:idx_products_store_slug" json:"store_id"` // 所属店铺
	CategoryID  *uint             `gorm:"index" json:"category_id"`                                                                              // 分类ID
	BrandID     *uint             `gorm:"index" json:"brand_id"`                                                                                 // 品牌ID
	Name        string            `gorm:"not null" json:"name"`                                                                                  // 商品名称
	Slug        string            `gorm:"not null;uniqueIndex:idx_products_store_slug" json:"slug"`                                              // 店铺内唯一标识
	SKU         string            `gorm:"not null;uniqueIndex:idx_products_store_sku" json:"sku"`                                                // 店铺内唯一 SKU
	Barcode     string            `gorm:"type:varchar(100)" json:"barcode"`                                                                      // 条码
	Description string            `gorm:"type:text" json:"description"`                                                                          // 商品描述
	Price       Money             `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                                                    // 售价
	SalePrice   *Money            `gorm:"type:decimal(20,2)" json:"sale_price"`                                                                  // 促销价（空表示无促销）
	Stock       int               `gorm:"not null;default:0" json:"stock"`                                                                       // 库存数量
	MinQuantity int               `gorm:"column:minimum_quantity;not null;default:1" json:"minimum_quantity"`                                    // 单笔最低购买量
	MaxPerOrder *int              `gorm:"column:maximum_per_order" json:"maximum_per_order"`                                                     // 单笔购买上限（空表示不限）
	IsAvailable bool              `gorm:"default:true;index" json:"is_available"`                                                                // 是否在售
	IsFeatured  bool              `gorm:"default:false" json:"is_featured"`                                                                      // 是否推荐
	IsVisible   bool              `gorm:"default:true;index" json:"is_visible"`                                                                  // 是否在前台展示
	Images      StringArray       `gorm:"type:json" json:"images"`                                                                               // 图片数组
	Tags        StringArray       `gorm:"type:json" json:"tags"`                                                                                 // 标签
	Attributes  ProductAttributes `gorm:"type:json" json:"attributes"`                                                                           // 属性键值（颜色、尺寸等）
	ViewsCount  int               `gorm:"not null;default:0" json:"views_count"`                                                                 // 浏览次数
	SortOrder   int               `gorm:"default:0;index" json:"sort_order"`                                                                     // 排序权重
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`                                                                               // 创建时间
	UpdatedAt   time.Time         `json:"updated_at"`                                                                                            // 更新时间
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`                                                                                        // 软删除时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 品牌信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回实际售价（促销价优先）
func (p Product) EffectivePrice() Money {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}
