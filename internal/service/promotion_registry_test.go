package service

import "testing"

func setupPromotionRegistryTest(t *testing.T) *PromotionRegistry {
	t.Helper()
	return NewPromotionRegistry(testPromoCodes(), setupSnapshotRepoTest(t))
}

func TestApplyCanonicalizesCode(t *testing.T) {
	registry := setupPromotionRegistryTest(t)

	promotion, err := registry.Apply(1, "  save10  ")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if promotion.Code != "SAVE10" || promotion.DiscountPercent != 10 {
		t.Fatalf("unexpected promotion: %+v", promotion)
	}
}

func TestApplyInvalidLeavesActiveUnchanged(t *testing.T) {
	registry := setupPromotionRegistryTest(t)

	if _, err := registry.Apply(1, "WELCOME"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := registry.Apply(1, "NOPE99"); err != ErrPromoCodeInvalid {
		t.Fatalf("expected ErrPromoCodeInvalid, got %v", err)
	}

	active, err := registry.Active(1)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active == nil || active.Code != "WELCOME" {
		t.Fatalf("expected WELCOME still active, got %+v", active)
	}
}

func TestApplyReplacesNotStacks(t *testing.T) {
	registry := setupPromotionRegistryTest(t)

	if _, err := registry.Apply(1, "SAVE10"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := registry.Apply(1, "SAVE20"); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	active, err := registry.Active(1)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active == nil || active.Code != "SAVE20" || active.DiscountPercent != 20 {
		t.Fatalf("expected SAVE20 to replace SAVE10, got %+v", active)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	registry := setupPromotionRegistryTest(t)

	if _, err := registry.Apply(1, "SAVE10"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := registry.Remove(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := registry.Remove(1); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}

	active, err := registry.Active(1)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active promotion, got %+v", active)
	}
}

func TestActiveScopedPerUser(t *testing.T) {
	registry := setupPromotionRegistryTest(t)

	if _, err := registry.Apply(1, "SAVE10"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	active, err := registry.Active(2)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected user 2 without promotion, got %+v", active)
	}
}
