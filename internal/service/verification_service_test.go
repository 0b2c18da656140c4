package service

import (
	"context"
	"testing"

	"github.com/shopora-next/internal/constants"
)

func setupVerificationServiceTest(t *testing.T) (*SimulatedVerificationService, *ProfileService) {
	t.Helper()
	profiles := NewProfileService(setupSnapshotRepoTest(t))
	verification := NewSimulatedVerificationService(disabledQueueClient(t), profiles, 60)
	return verification, profiles
}

func TestSendCodeRejectsUnknownTargetType(t *testing.T) {
	verification, _ := setupVerificationServiceTest(t)
	if err := verification.SendCode(context.Background(), 1, "fax", "1234"); err != ErrVerifyTargetInvalid {
		t.Fatalf("expected ErrVerifyTargetInvalid, got %v", err)
	}
}

func TestSendCodeRejectsBlankTarget(t *testing.T) {
	verification, _ := setupVerificationServiceTest(t)
	if err := verification.SendCode(context.Background(), 1, constants.VerifyTargetEmail, "   "); err != ErrVerifyTargetInvalid {
		t.Fatalf("expected ErrVerifyTargetInvalid, got %v", err)
	}
}

func TestSendCodeSucceedsWithQueueDisabled(t *testing.T) {
	verification, _ := setupVerificationServiceTest(t)
	if err := verification.SendCode(context.Background(), 1, constants.VerifyTargetEmail, "demo@example.com"); err != nil {
		t.Fatalf("send code failed: %v", err)
	}
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	verification, profiles := setupVerificationServiceTest(t)

	ok, err := verification.VerifyCode(context.Background(), 1, constants.VerifyTargetEmail, "000000")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong code rejected")
	}
	profile, err := profiles.Get(1)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.EmailVerified {
		t.Fatalf("expected verified flag untouched on reject")
	}
}

func TestVerifyCodeAcceptsDemoCodeAndMarksVerified(t *testing.T) {
	verification, profiles := setupVerificationServiceTest(t)

	ok, err := verification.VerifyCode(context.Background(), 1, constants.VerifyTargetPhone, " "+constants.DemoVerifyCode+" ")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected demo code accepted")
	}
	profile, err := profiles.Get(1)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if !profile.PhoneVerified {
		t.Fatalf("expected phone_verified set")
	}
	if profile.EmailVerified {
		t.Fatalf("expected email_verified untouched")
	}
}

func TestVerifyCodeRejectsUnknownTargetType(t *testing.T) {
	verification, _ := setupVerificationServiceTest(t)
	if _, err := verification.VerifyCode(context.Background(), 1, "fax", constants.DemoVerifyCode); err != ErrVerifyTargetInvalid {
		t.Fatalf("expected ErrVerifyTargetInvalid, got %v", err)
	}
}
