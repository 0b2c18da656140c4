package models

import "time"

// OrderItem 订单行项（下单时从购物车行项固化）
type OrderItem struct {
	ID        string            `json:"id"`                // 商品 ID
	Title     string            `json:"title"`             // 商品标题
	Image     string            `json:"image"`             // 商品图片
	Seller    string            `json:"seller"`            // 卖家名称
	UnitPrice Money             `json:"unit_price"`        // 单价
	Quantity  int               `json:"quantity"`          // 数量
	Options   []OptionSelection `json:"options,omitempty"` // 选项选择
}

// ReviewPayload 评价内容（订单级或行项级）
type ReviewPayload struct {
	Rating    float64   `json:"rating"`           // 评分 [0,5]
	Text      string    `json:"text,omitempty"`   // 文字评价
	Images    []string  `json:"images,omitempty"` // 图片引用（至多 8 张）
	UpdatedAt time.Time `json:"updated_at"`       // 最后更新时间
}

// Order 订单（下单后除状态与评价外不可变）
type Order struct {
	ID            string                    `json:"id"`                     // 订单 ID
	Number        string                    `json:"number"`                 // 订单号（生成后不复用）
	Date          time.Time                 `json:"date"`                   // 下单时间
	Status        string                    `json:"status"`                 // 订单状态
	PaymentMethod string                    `json:"payment_method"`         // 支付方式（演示用）
	Address       string                    `json:"address"`                // 收货地址（冗余字符串）
	Subtotal      Money                     `json:"subtotal"`               // 商品小计
	Discount      Money                     `json:"discount"`               // 优惠金额
	Shipping      Money                     `json:"shipping"`               // 运费
	Tax           Money                     `json:"tax"`                    // 税费
	Total         Money                     `json:"total"`                  // 应付总额
	PromoCode     string                    `json:"promo_code,omitempty"`   // 使用的优惠码
	Items         []OrderItem               `json:"items"`                  // 订单行项
	OrderReview   *ReviewPayload            `json:"order_review,omitempty"` // 订单级评价
	ItemReviews   map[string]*ReviewPayload `json:"item_reviews,omitempty"` // 行项评价（itemId → 评价）
}

// OrderState 订单快照（最新订单在前）
type OrderState struct {
	Orders []Order `json:"orders"`
}
