package repository

import "time"

// StoreListFilter 查询店铺列表的过滤条件
type StoreListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// UserListFilter 查询后台用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	StoreID  uint
	Keyword  string
	IsActive *bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// BrandListFilter 查询品牌列表的过滤条件
type BrandListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	BrandID      uint
	Search       string
	OnlyLowStock bool
	IsAvailable  *bool
	WithRelated  bool
}

// CustomerListFilter 查询顾客列表的过滤条件
type CustomerListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	CustomerID    uint
	Status        string
	PaymentStatus string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	WithCustomer  bool
}

// NotificationListFilter 查询通知列表的过滤条件
type NotificationListFilter struct {
	Page     int
	PageSize int
	Status   string
	Channel  string
	Search   string
}

// ActivityLogListFilter 查询操作日志列表的过滤条件
type ActivityLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Action      string
	SubjectType string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
