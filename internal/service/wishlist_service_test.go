package service

import (
	"testing"

	"github.com/shopora-next/internal/models"
)

func setupWishlistServiceTest(t *testing.T) *WishlistService {
	t.Helper()
	return NewWishlistService(setupSnapshotRepoTest(t))
}

func wishlistItem(id string) models.WishlistItem {
	return models.WishlistItem{
		ID:    id,
		Title: "item " + id,
		Price: models.NewMoneyFromFloat(19.99),
	}
}

func TestWishlistAddDeduplicatesByID(t *testing.T) {
	wishlist := setupWishlistServiceTest(t)

	if err := wishlist.Add(1, wishlistItem("p1")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := wishlist.Add(1, wishlistItem("p1")); err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}
	if err := wishlist.Add(1, wishlistItem("p2")); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := wishlist.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "p1" || items[1].ID != "p2" {
		t.Fatalf("expected insertion order preserved, got %+v", items)
	}
	if items[0].AddedAt.IsZero() {
		t.Fatalf("expected added_at stamped")
	}
}

func TestWishlistAddRejectsBlankID(t *testing.T) {
	wishlist := setupWishlistServiceTest(t)
	if err := wishlist.Add(1, models.WishlistItem{}); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestWishlistRemoveIdempotent(t *testing.T) {
	wishlist := setupWishlistServiceTest(t)

	if err := wishlist.Add(1, wishlistItem("p1")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := wishlist.Remove(1, "p1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := wishlist.Remove(1, "p1"); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}

	contains, err := wishlist.Contains(1, "p1")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if contains {
		t.Fatalf("expected item removed")
	}
}

func TestWishlistClear(t *testing.T) {
	wishlist := setupWishlistServiceTest(t)

	if err := wishlist.Add(1, wishlistItem("p1")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := wishlist.Add(1, wishlistItem("p2")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := wishlist.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err := wishlist.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist, got %d", len(items))
	}
}

func TestWishlistScopedPerUser(t *testing.T) {
	wishlist := setupWishlistServiceTest(t)

	if err := wishlist.Add(1, wishlistItem("p1")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := wishlist.List(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected user 2 wishlist empty, got %+v", items)
	}
}
