package service

import (
	"strings"
	"testing"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
)

type orderServiceFixture struct {
	orders     *OrderService
	carts      *CartService
	promotions *PromotionRegistry
	locations  *LocationService
	profiles   *ProfileService
}

func setupOrderServiceTest(t *testing.T) orderServiceFixture {
	t.Helper()
	repo := setupSnapshotRepoTest(t)
	promotions := NewPromotionRegistry(testPromoCodes(), repo)
	carts := NewCartService(repo, promotions, testPricingConfig())
	locations := NewLocationService(repo)
	profiles := NewProfileService(repo)
	orders := NewOrderService(repo, carts, promotions, locations, profiles, disabledQueueClient(t))
	return orderServiceFixture{
		orders:     orders,
		carts:      carts,
		promotions: promotions,
		locations:  locations,
		profiles:   profiles,
	}
}

// completeCheckoutProfile 将用户资料补全到可结算状态
func completeCheckoutProfile(t *testing.T, f orderServiceFixture, userID uint) {
	t.Helper()
	if _, err := f.profiles.Update(userID, ProfileUpdateInput{
		FirstName:   strPtr("Dana"),
		LastName:    strPtr("Khalil"),
		Gender:      strPtr("female"),
		DateOfBirth: strPtr("1995-04-12"),
	}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if _, err := f.profiles.MarkVerified(userID, constants.VerifyTargetEmail); err != nil {
		t.Fatalf("mark email verified failed: %v", err)
	}
	if _, err := f.profiles.MarkVerified(userID, constants.VerifyTargetPhone); err != nil {
		t.Fatalf("mark phone verified failed: %v", err)
	}
	// 触发地址种子落盘
	if _, err := f.locations.List(userID); err != nil {
		t.Fatalf("list locations failed: %v", err)
	}
}

func TestListSeedsSampleOrders(t *testing.T) {
	f := setupOrderServiceTest(t)

	orders, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) == 0 {
		t.Fatalf("expected seeded sample orders")
	}
	if orders[0].Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered seed order, got %s", orders[0].Status)
	}
}

func TestPlaceOrderGatedByProfileValidation(t *testing.T) {
	f := setupOrderServiceTest(t)

	if err := f.carts.AddToCart(1, cartLine("p1", 10.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// 种子资料未验证邮箱/手机，缺少性别与生日
	if _, err := f.orders.PlaceOrder(1, PlaceOrderInput{PaymentMethod: "card"}); err != ErrProfileIncomplete {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := setupOrderServiceTest(t)
	completeCheckoutProfile(t, f, 1)

	if _, err := f.orders.PlaceOrder(1, PlaceOrderInput{PaymentMethod: "card"}); err != ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestPlaceOrderBuildsFromCartAndClearsIt(t *testing.T) {
	f := setupOrderServiceTest(t)
	completeCheckoutProfile(t, f, 1)

	if err := f.carts.AddToCart(1, cartLine("p1", 10.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := f.carts.UpdateQuantity(1, "p1", 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := f.promotions.Apply(1, "SAVE10"); err != nil {
		t.Fatalf("apply promo failed: %v", err)
	}

	before, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	order, err := f.orders.PlaceOrder(1, PlaceOrderInput{PaymentMethod: "cash_on_delivery"})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if !strings.HasPrefix(order.Number, constants.OrderNoPrefix) {
		t.Fatalf("expected order number prefix %s, got %s", constants.OrderNoPrefix, order.Number)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if got := order.Total.String(); got != "25.43" {
		t.Fatalf("expected total 25.43, got %s", got)
	}
	if order.PromoCode != "SAVE10" {
		t.Fatalf("expected promo code captured, got %s", order.PromoCode)
	}
	if order.Address == "" {
		t.Fatalf("expected denormalized address string")
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	after, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected order prepended, before=%d after=%d", len(before), len(after))
	}
	if after[0].ID != order.ID {
		t.Fatalf("expected newest order first")
	}

	view, err := f.carts.View(1)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected cart cleared after checkout")
	}
	active, err := f.promotions.Active(1)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected promo cleared after checkout")
	}
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	f := setupOrderServiceTest(t)
	completeCheckoutProfile(t, f, 1)

	if err := f.carts.AddToCart(1, cartLine("p1", 10.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.orders.PlaceOrder(1, PlaceOrderInput{})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// 跳跃流转被拒绝
	if _, err := f.orders.UpdateStatus(1, order.ID, constants.OrderStatusDelivered); err != ErrOrderStatusInvalid {
		t.Fatalf("expected ErrOrderStatusInvalid for skip, got %v", err)
	}

	chain := []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOnTheWay,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	}
	for _, status := range chain {
		if _, err := f.orders.UpdateStatus(1, order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// 终态不可再流转
	if _, err := f.orders.UpdateStatus(1, order.ID, constants.OrderStatusCancelled); err != ErrOrderStatusInvalid {
		t.Fatalf("expected terminal state locked, got %v", err)
	}
}

func TestUpdateStatusCancelFromMidProgress(t *testing.T) {
	f := setupOrderServiceTest(t)
	completeCheckoutProfile(t, f, 1)

	if err := f.carts.AddToCart(1, cartLine("p1", 10.00, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := f.orders.PlaceOrder(1, PlaceOrderInput{})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := f.orders.UpdateStatus(1, order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	updated, err := f.orders.UpdateStatus(1, order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	f := setupOrderServiceTest(t)
	orders, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, err := f.orders.UpdateStatus(1, orders[0].ID, "teleported"); err != ErrOrderStatusInvalid {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestOrderReviewLifecycle(t *testing.T) {
	f := setupOrderServiceTest(t)

	orders, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	delivered := orders[0]

	payload := models.ReviewPayload{Rating: 4.5, Text: "great"}
	updated, err := f.orders.UpdateOrderReview(1, delivered.ID, payload)
	if err != nil {
		t.Fatalf("update order review failed: %v", err)
	}
	if updated.OrderReview == nil || updated.OrderReview.Rating != 4.5 {
		t.Fatalf("unexpected review: %+v", updated.OrderReview)
	}
	if updated.OrderReview.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at stamped")
	}

	// 覆盖写
	updated, err = f.orders.UpdateOrderReview(1, delivered.ID, models.ReviewPayload{Rating: 2})
	if err != nil {
		t.Fatalf("overwrite review failed: %v", err)
	}
	if updated.OrderReview.Rating != 2 {
		t.Fatalf("expected overwritten rating, got %v", updated.OrderReview.Rating)
	}

	updated, err = f.orders.DeleteOrderReview(1, delivered.ID)
	if err != nil {
		t.Fatalf("delete order review failed: %v", err)
	}
	if updated.OrderReview != nil {
		t.Fatalf("expected review cleared")
	}
}

func TestItemReviewLifecycle(t *testing.T) {
	f := setupOrderServiceTest(t)

	orders, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	delivered := orders[0]
	itemID := delivered.Items[0].ID

	if _, err := f.orders.UpdateItemReview(1, delivered.ID, "missing-item", models.ReviewPayload{Rating: 3}); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}

	updated, err := f.orders.UpdateItemReview(1, delivered.ID, itemID, models.ReviewPayload{Rating: 5})
	if err != nil {
		t.Fatalf("update item review failed: %v", err)
	}
	if updated.ItemReviews[itemID] == nil || updated.ItemReviews[itemID].Rating != 5 {
		t.Fatalf("unexpected item review: %+v", updated.ItemReviews)
	}

	// 删除后映射整体置空
	updated, err = f.orders.DeleteItemReview(1, delivered.ID, itemID)
	if err != nil {
		t.Fatalf("delete item review failed: %v", err)
	}
	if updated.ItemReviews != nil {
		t.Fatalf("expected empty mapping dropped, got %+v", updated.ItemReviews)
	}
}

func TestReviewPayloadValidation(t *testing.T) {
	f := setupOrderServiceTest(t)

	orders, err := f.orders.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	delivered := orders[0]

	if _, err := f.orders.UpdateOrderReview(1, delivered.ID, models.ReviewPayload{Rating: 5.5}); err != ErrReviewInvalid {
		t.Fatalf("expected ErrReviewInvalid for rating, got %v", err)
	}
	if _, err := f.orders.UpdateOrderReview(1, delivered.ID, models.ReviewPayload{Rating: -1}); err != ErrReviewInvalid {
		t.Fatalf("expected ErrReviewInvalid for negative rating, got %v", err)
	}
	images := make([]string, 9)
	for i := range images {
		images[i] = "img"
	}
	if _, err := f.orders.UpdateOrderReview(1, delivered.ID, models.ReviewPayload{Rating: 4, Images: images}); err != ErrReviewInvalid {
		t.Fatalf("expected ErrReviewInvalid for too many images, got %v", err)
	}
}

func TestListAllByUserGroupsSnapshots(t *testing.T) {
	f := setupOrderServiceTest(t)

	if _, err := f.orders.List(1); err != nil {
		t.Fatalf("list user 1 failed: %v", err)
	}
	if _, err := f.orders.List(2); err != nil {
		t.Fatalf("list user 2 failed: %v", err)
	}

	all, err := f.orders.ListAllByUser()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two users, got %d", len(all))
	}
	if len(all[1]) == 0 || len(all[2]) == 0 {
		t.Fatalf("expected orders for both users: %+v", all)
	}
}

func TestCanTransitionTable(t *testing.T) {
	if !CanTransition(constants.OrderStatusPending, constants.OrderStatusConfirmed) {
		t.Fatalf("expected pending -> confirmed allowed")
	}
	if CanTransition(constants.OrderStatusPending, constants.OrderStatusReady) {
		t.Fatalf("expected pending -> ready denied")
	}
	if !CanTransition(constants.OrderStatusOnTheWay, constants.OrderStatusDeliveryFailed) {
		t.Fatalf("expected delivery_failed reachable mid-progress")
	}
	if CanTransition(constants.OrderStatusCancelled, constants.OrderStatusPending) {
		t.Fatalf("expected cancelled terminal")
	}
}
