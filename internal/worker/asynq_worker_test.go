package worker

import "testing"

func TestMaskTargetEmail(t *testing.T) {
	if got := maskTarget("alice@example.com"); got != "a***@example.com" {
		t.Fatalf("unexpected masked email: %q", got)
	}
}

func TestMaskTargetPhone(t *testing.T) {
	if got := maskTarget("+96170123456"); got != "****3456" {
		t.Fatalf("unexpected masked phone: %q", got)
	}
}

func TestMaskTargetShortValue(t *testing.T) {
	if got := maskTarget("123"); got != "****" {
		t.Fatalf("expected short values fully masked, got %q", got)
	}
}

func TestMaskTargetEmpty(t *testing.T) {
	if got := maskTarget("   "); got != "" {
		t.Fatalf("expected empty mask for blank target, got %q", got)
	}
}
