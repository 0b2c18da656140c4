package pricing

import (
	"testing"

	"github.com/shopora-next/internal/models"
)

func testConfig() Config {
	return NewConfig(0.08, 50.00, 5.99)
}

func line(id string, price float64, qty int) models.CartLine {
	return models.CartLine{
		ID:        id,
		Title:     "item " + id,
		UnitPrice: models.NewMoneyFromFloat(price),
		Quantity:  qty,
	}
}

func TestQuoteWithPromoBelowFreeShipping(t *testing.T) {
	cfg := testConfig()
	lines := []models.CartLine{line("a", 10.00, 2)}
	promo := &models.Promotion{Code: "SAVE10", DiscountPercent: 10}

	quote := cfg.Quote(lines, promo)

	if got := quote.Subtotal.String(); got != "20.00" {
		t.Fatalf("expected subtotal 20.00, got %s", got)
	}
	if got := quote.Discount.String(); got != "2.00" {
		t.Fatalf("expected discount 2.00, got %s", got)
	}
	if got := quote.Shipping.String(); got != "5.99" {
		t.Fatalf("expected shipping 5.99, got %s", got)
	}
	if got := quote.Tax.String(); got != "1.44" {
		t.Fatalf("expected tax 1.44, got %s", got)
	}
	if got := quote.Total.String(); got != "25.43" {
		t.Fatalf("expected total 25.43, got %s", got)
	}
	if quote.PromoCode != "SAVE10" {
		t.Fatalf("expected promo code SAVE10, got %s", quote.PromoCode)
	}
}

func TestQuoteFreeShippingAtExactThreshold(t *testing.T) {
	cfg := testConfig()
	lines := []models.CartLine{line("a", 10.00, 5)}

	quote := cfg.Quote(lines, nil)

	if got := quote.Subtotal.String(); got != "50.00" {
		t.Fatalf("expected subtotal 50.00, got %s", got)
	}
	if got := quote.Shipping.String(); got != "0.00" {
		t.Fatalf("expected free shipping at exactly threshold, got %s", got)
	}
	if got := quote.Tax.String(); got != "4.00" {
		t.Fatalf("expected tax 4.00, got %s", got)
	}
	if got := quote.Total.String(); got != "54.00" {
		t.Fatalf("expected total 54.00, got %s", got)
	}
}

func TestShippingFlatFeeBelowThreshold(t *testing.T) {
	cfg := testConfig()
	lines := []models.CartLine{line("a", 49.99, 1)}

	quote := cfg.Quote(lines, nil)
	if got := quote.Shipping.String(); got != "5.99" {
		t.Fatalf("expected flat fee 5.99 below threshold, got %s", got)
	}
}

func TestValidPromoStrictlyDecreasesTotal(t *testing.T) {
	cfg := testConfig()
	lines := []models.CartLine{line("a", 12.50, 3), line("b", 7.25, 1)}

	without := cfg.Quote(lines, nil)
	with := cfg.Quote(lines, &models.Promotion{Code: "SAVE20", DiscountPercent: 20})

	if !with.Total.Decimal.LessThan(without.Total.Decimal) {
		t.Fatalf("expected promo to strictly decrease total: %s vs %s", with.Total, without.Total)
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	lines := []models.CartLine{line("a", 1.00, 3), line("b", 2.00, 4), line("c", 3.00, 1)}
	if got := ItemCount(lines); got != 8 {
		t.Fatalf("expected item count 8, got %d", got)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	cfg := testConfig()
	quote := cfg.Quote(nil, nil)

	if quote.ItemCount != 0 {
		t.Fatalf("expected empty item count, got %d", quote.ItemCount)
	}
	if got := quote.Subtotal.String(); got != "0.00" {
		t.Fatalf("expected zero subtotal, got %s", got)
	}
	// 空车也按阶梯计运费，结算入口由资格校验拦截
	if got := quote.Shipping.String(); got != "5.99" {
		t.Fatalf("expected flat fee for empty cart, got %s", got)
	}
}

func TestNoIntermediateRounding(t *testing.T) {
	cfg := testConfig()
	lines := []models.CartLine{{
		ID:        "a",
		UnitPrice: models.NewMoneyFromFloat(10.00),
		Quantity:  3,
	}, {
		ID:        "b",
		UnitPrice: models.NewMoneyFromFloat(0.01),
		Quantity:  1,
	}}
	promo := &models.Promotion{Code: "WELCOME", DiscountPercent: 15}

	quote := cfg.Quote(lines, promo)

	// subtotal 30.01, discount 4.5015 → 4.50, tax (30.01−4.5015)×0.08 = 2.04068 → 2.04
	if got := quote.Discount.String(); got != "4.50" {
		t.Fatalf("expected discount 4.50, got %s", got)
	}
	if got := quote.Tax.String(); got != "2.04" {
		t.Fatalf("expected tax 2.04, got %s", got)
	}
}
