package models

import "time"

// WishlistItem 心愿单商品快照（与购物车互相独立）
type WishlistItem struct {
	ID            string    `json:"id"`                       // 商品 ID
	Title         string    `json:"title"`                    // 商品标题
	Image         string    `json:"image"`                    // 商品图片
	Seller        string    `json:"seller"`                   // 卖家名称
	Price         Money     `json:"price"`                    // 当前价
	OriginalPrice *Money    `json:"original_price,omitempty"` // 划线价
	Rating        float64   `json:"rating"`                   // 评分
	SoldCount     int       `json:"sold_count"`               // 销量
	Badges        []string  `json:"badges,omitempty"`         // 标签
	AddedAt       time.Time `json:"added_at"`                 // 加入时间
}

// WishlistState 心愿单快照
type WishlistState struct {
	Items []WishlistItem `json:"items"` // 按加入时间排序
}
