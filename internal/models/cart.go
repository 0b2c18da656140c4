package models

// OptionSelection 商品选项选择（有序）
type OptionSelection struct {
	Name  string `json:"name"`  // 选项名（如 Color）
	Value string `json:"value"` // 选中值（如 Black）
}

// CartLine 购物车行项（快照字段在加入时固化，后续改价不影响）
type CartLine struct {
	ID                string            `json:"id"`                            // 商品 ID
	Title             string            `json:"title"`                         // 商品标题
	Image             string            `json:"image"`                         // 商品图片
	Seller            string            `json:"seller"`                        // 卖家名称
	UnitPrice         Money             `json:"unit_price"`                    // 加入时单价
	OriginalUnitPrice *Money            `json:"original_unit_price,omitempty"` // 划线价
	Quantity          int               `json:"quantity"`                      // 数量（始终 >= 1）
	Options           []OptionSelection `json:"options,omitempty"`             // 选项选择
}

// CartState 购物车快照（购物车 + 稍后购买为两个互斥集合）
type CartState struct {
	Lines []CartLine `json:"lines"` // 购物车行项
}

// SavedState 稍后购买快照
type SavedState struct {
	Lines []CartLine `json:"lines"` // 稍后购买行项
}

// Promotion 当前生效的优惠（同一时刻至多一个）
type Promotion struct {
	Code            string  `json:"code"`             // 优惠码（已规范化为大写）
	DiscountPercent float64 `json:"discount_percent"` // 折扣百分比 [0,100]
}
