package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopora-next/internal/config"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/pricing"
	"github.com/shopora-next/internal/queue"
	"github.com/shopora-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSnapshotRepoTest(t *testing.T) repository.SnapshotRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Snapshot{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repository.NewSnapshotRepository(db)
}

func testPromoCodes() map[string]float64 {
	return map[string]float64{"SAVE10": 10, "SAVE20": 20, "WELCOME": 15}
}

func testPricingConfig() pricing.Config {
	return pricing.NewConfig(0.08, 50.00, 5.99)
}

func setupCartServiceTest(t *testing.T) (*CartService, *PromotionRegistry) {
	t.Helper()
	repo := setupSnapshotRepoTest(t)
	promotions := NewPromotionRegistry(testPromoCodes(), repo)
	carts := NewCartService(repo, promotions, testPricingConfig())
	return carts, promotions
}

func disabledQueueClient(t *testing.T) *queue.Client {
	t.Helper()
	client, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	return client
}

func cartLine(id string, price float64, qty int) models.CartLine {
	return models.CartLine{
		ID:        id,
		Title:     "item " + id,
		UnitPrice: models.NewMoneyFromFloat(price),
		Quantity:  qty,
	}
}

func TestAddToCartRepeatedIncrementsQuantityFirstPriceWins(t *testing.T) {
	carts, _ := setupCartServiceTest(t)
	userID := uint(1)

	first := cartLine("p1", 10.00, 1)
	if err := carts.AddToCart(userID, first); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// 同商品再次加入时价格不覆盖
	repriced := cartLine("p1", 99.00, 1)
	if err := carts.AddToCart(userID, repriced); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if err := carts.AddToCart(userID, repriced); err != nil {
		t.Fatalf("third add failed: %v", err)
	}

	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected single line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", view.Lines[0].Quantity)
	}
	if got := view.Lines[0].UnitPrice.String(); got != "10.00" {
		t.Fatalf("expected first-add price 10.00, got %s", got)
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	carts, _ := setupCartServiceTest(t)
	userID := uint(2)

	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.AddToCart(userID, cartLine("p2", 7.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := carts.UpdateQuantity(userID, "p1", 0); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ID != "p2" {
		t.Fatalf("expected only p2 remaining, got %+v", view.Lines)
	}

	// removeFromCart 得到相同集合
	if err := carts.RemoveFromCart(userID, "p2"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// 不存在时幂等
	if err := carts.RemoveFromCart(userID, "p2"); err != nil {
		t.Fatalf("idempotent remove failed: %v", err)
	}
	view, err = carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
}

func TestUpdateQuantityExactSet(t *testing.T) {
	carts, _ := setupCartServiceTest(t)
	userID := uint(3)

	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.UpdateQuantity(userID, "p1", 7); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Lines[0].Quantity != 7 {
		t.Fatalf("expected exact quantity 7, got %d", view.Lines[0].Quantity)
	}
	if err := carts.UpdateQuantity(userID, "missing", 2); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestSaveForLaterMovesWithQuantity(t *testing.T) {
	carts, _ := setupCartServiceTest(t)
	userID := uint(4)

	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.UpdateQuantity(userID, "p1", 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := carts.SaveForLater(userID, "p1"); err != nil {
		t.Fatalf("save for later failed: %v", err)
	}
	// 不在购物车时 no-op
	if err := carts.SaveForLater(userID, "p1"); err != nil {
		t.Fatalf("repeat save for later failed: %v", err)
	}

	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected cart emptied, got %d lines", len(view.Lines))
	}
	if len(view.Saved) != 1 || view.Saved[0].Quantity != 4 {
		t.Fatalf("expected saved line with quantity 4, got %+v", view.Saved)
	}
}

func TestMoveToCartMergesQuantities(t *testing.T) {
	carts, _ := setupCartServiceTest(t)
	userID := uint(5)

	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.UpdateQuantity(userID, "p1", 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := carts.SaveForLater(userID, "p1"); err != nil {
		t.Fatalf("save for later failed: %v", err)
	}
	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	if err := carts.UpdateQuantity(userID, "p1", 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := carts.MoveToCart(userID, "p1"); err != nil {
		t.Fatalf("move to cart failed: %v", err)
	}

	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %+v", view.Lines)
	}
	if len(view.Saved) != 0 {
		t.Fatalf("expected saved collection emptied, got %+v", view.Saved)
	}
}

func TestClearCartClearsPromoKeepsSaved(t *testing.T) {
	carts, promotions := setupCartServiceTest(t)
	userID := uint(6)

	if err := carts.AddToCart(userID, cartLine("p1", 5.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.AddToCart(userID, cartLine("p2", 8.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.SaveForLater(userID, "p2"); err != nil {
		t.Fatalf("save for later failed: %v", err)
	}
	if _, err := promotions.Apply(userID, "save10"); err != nil {
		t.Fatalf("apply promo failed: %v", err)
	}

	if err := carts.ClearCart(userID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d", len(view.Lines))
	}
	if len(view.Saved) != 1 {
		t.Fatalf("expected saved untouched, got %d", len(view.Saved))
	}
	active, err := promotions.Active(userID)
	if err != nil {
		t.Fatalf("active promo failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected promo cleared, got %+v", active)
	}
}

func TestViewQuoteReflectsPromotion(t *testing.T) {
	carts, promotions := setupCartServiceTest(t)
	userID := uint(7)

	if err := carts.AddToCart(userID, cartLine("p1", 10.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.UpdateQuantity(userID, "p1", 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := promotions.Apply(userID, " save10 "); err != nil {
		t.Fatalf("apply promo failed: %v", err)
	}

	view, err := carts.View(userID)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if got := view.Quote.Total.String(); got != "25.43" {
		t.Fatalf("expected total 25.43, got %s", got)
	}
	if view.Quote.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", view.Quote.ItemCount)
	}
}
