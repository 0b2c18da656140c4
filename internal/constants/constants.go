package constants

// 订单状态常量（线性推进，终态分支见 service.allowedTransitions）
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOnTheWay       = "on_the_way"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusDeliveryFailed = "delivery_failed"
	OrderStatusCancelled      = "cancelled"
)

// 快照存储键前缀（每个集合一个键，整体覆盖写入）
const (
	SnapshotKeyCart             = "cart"
	SnapshotKeySaved            = "saved"
	SnapshotKeyPromo            = "promo"
	SnapshotKeyWishlist         = "wishlist"
	SnapshotKeyLocations        = "locations"
	SnapshotKeySelectedLocation = "selected_location"
	SnapshotKeyOrders           = "orders"
	SnapshotKeyProfile          = "profile"
)

// 验证目标类型常量
const (
	VerifyTargetEmail = "email"
	VerifyTargetPhone = "phone"
)

// DemoVerifyCode 模拟验证码（演示环境固定值，不做真实下发）
const DemoVerifyCode = "123456"

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskVerifyCodeDeliver = "verify:code_deliver"
	TaskOrderPlacedNotify = "order:placed_notify"
)

// 校验阈值常量
const (
	ReviewRatingMin  = 0
	ReviewRatingMax  = 5
	ReviewImagesMax  = 8
	PhoneMinDigits   = 6
	NameMinLength    = 2
	VerifyCodeLength = 6
)

// CartQuantityMax 购物车单行数量上限（在 HTTP 边界裁剪）
const CartQuantityMax = 99

// OrderNoPrefix 订单编号前缀
const OrderNoPrefix = "SP"
