package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCompleted  = "completed"
	OrderStatusCanceled   = "canceled"
)

// 支付状态常量
const (
	PaymentStatusPending       = "pending"
	PaymentStatusPaid          = "paid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusRefunded      = "refunded"
	PaymentStatusFailed        = "failed"
)

// 通知状态常量
const (
	NotificationStatusDraft     = "draft"
	NotificationStatusScheduled = "scheduled"
	NotificationStatusSent      = "sent"
	NotificationStatusFailed    = "failed"
)

// 通知渠道常量
const (
	NotificationChannelApp   = "app"
	NotificationChannelEmail = "email"
	NotificationChannelSMS   = "sms"

	// 通知目标人群
	NotificationAudienceAll    = "all"
	NotificationAudienceActive = "active"
)

// 店铺主题常量
const (
	StoreThemeLight = "light"
	StoreThemeDark  = "dark"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务名称常量
const (
	TaskNotificationDispatch = "notification:dispatch"
)

// 库存告警默认阈值
const (
	LowStockThreshold = 10
)

// 店铺列表固定分页大小与详情页展示条数
const (
	StorePageSize          = 10
	StoreDetailRecentLimit = 5
)

// SalesOrderStatuses 计入销售额统计的订单状态集合
func SalesOrderStatuses() []string {
	return []string{OrderStatusCompleted, OrderStatusDelivered}
}

// ActiveOrderStatuses 视为进行中的订单状态集合
func ActiveOrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped}
}
