package pricing

import (
	"github.com/shopora-next/internal/models"

	"github.com/shopspring/decimal"
)

// Config 计价常量（来自配置，不在调用点硬编码）
type Config struct {
	TaxRate               decimal.Decimal // 税率（作用于折后、未含运费金额）
	FreeShippingThreshold decimal.Decimal // 包邮门槛（达到即免运费）
	ShippingFlatFee       decimal.Decimal // 未包邮时的固定运费
}

// NewConfig 从配置浮点值构建计价常量
func NewConfig(taxRate, freeShippingThreshold, shippingFlatFee float64) Config {
	return Config{
		TaxRate:               decimal.NewFromFloat(taxRate),
		FreeShippingThreshold: decimal.NewFromFloat(freeShippingThreshold),
		ShippingFlatFee:       decimal.NewFromFloat(shippingFlatFee),
	}
}

// Subtotal 商品小计 = Σ(单价 × 数量)，中间过程不做舍入
func Subtotal(lines []models.CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// DiscountAmount 优惠金额 = 小计 × (折扣百分比 / 100)；无优惠时为 0
func DiscountAmount(subtotal decimal.Decimal, promotion *models.Promotion) decimal.Decimal {
	if promotion == nil {
		return decimal.Zero
	}
	percent := decimal.NewFromFloat(promotion.DiscountPercent)
	return subtotal.Mul(percent).Div(decimal.NewFromInt(100))
}

// ShippingCost 运费阶梯：小计达到门槛（含相等）免运费，否则固定运费
func (c Config) ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(c.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.ShippingFlatFee
}

// Tax 税费 = (小计 − 优惠金额) × 税率，不含运费
func (c Config) Tax(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount).Mul(c.TaxRate)
}

// Total 应付总额 = 小计 − 优惠 + 运费 + 税费
func Total(subtotal, discountAmount, shippingCost, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discountAmount).Add(shippingCost).Add(tax)
}

// ItemCount 商品总件数 = Σ 数量（区别于行项数）
func ItemCount(lines []models.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Quote 一次完整计价结果（仅在此处舍入到 2 位小数）
type Quote struct {
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
	Discount  models.Money `json:"discount"`
	Shipping  models.Money `json:"shipping"`
	Tax       models.Money `json:"tax"`
	Total     models.Money `json:"total"`
	PromoCode string       `json:"promo_code,omitempty"`
}

// Quote 根据购物车行项与当前优惠计算完整报价，每次读取重新计算
func (c Config) Quote(lines []models.CartLine, promotion *models.Promotion) Quote {
	subtotal := Subtotal(lines)
	discount := DiscountAmount(subtotal, promotion)
	shipping := c.ShippingCost(subtotal)
	tax := c.Tax(subtotal, discount)
	total := Total(subtotal, discount, shipping, tax)

	quote := Quote{
		ItemCount: ItemCount(lines),
		Subtotal:  models.NewMoneyFromDecimal(subtotal),
		Discount:  models.NewMoneyFromDecimal(discount),
		Shipping:  models.NewMoneyFromDecimal(shipping),
		Tax:       models.NewMoneyFromDecimal(tax),
		Total:     models.NewMoneyFromDecimal(total),
	}
	if promotion != nil {
		quote.PromoCode = promotion.Code
	}
	return quote
}
