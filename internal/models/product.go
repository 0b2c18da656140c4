package models

// ProductOption 商品可选项定义
type ProductOption struct {
	Name   string   `json:"name"`   // 选项名
	Values []string `json:"values"` // 可选值
}

// Product 商品（目录为内存演示数据，不落库）
type Product struct {
	ID            string          `json:"id"`                       // 商品 ID
	Title         string          `json:"title"`                    // 商品标题
	Description   string          `json:"description"`              // 商品描述
	Image         string          `json:"image"`                    // 商品图片
	Seller        string          `json:"seller"`                   // 卖家名称
	Category      string          `json:"category"`                 // 分类
	Price         Money           `json:"price"`                    // 当前价
	OriginalPrice *Money          `json:"original_price,omitempty"` // 划线价
	Rating        float64         `json:"rating"`                   // 评分
	SoldCount     int             `json:"sold_count"`               // 销量
	Badges        []string        `json:"badges,omitempty"`         // 标签
	Options       []ProductOption `json:"options,omitempty"`        // 可选项
}
