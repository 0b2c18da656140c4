package service

import (
	"testing"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
)

func strPtr(s string) *string { return &s }

func setupProfileServiceTest(t *testing.T) *ProfileService {
	t.Helper()
	return NewProfileService(setupSnapshotRepoTest(t))
}

func TestGetSeedsDefaultProfile(t *testing.T) {
	profiles := setupProfileServiceTest(t)

	profile, err := profiles.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.FirstName == "" || profile.Email == "" {
		t.Fatalf("expected seeded profile, got %+v", profile)
	}
	if profile.EmailVerified || profile.PhoneVerified {
		t.Fatalf("seed profile must start unverified: %+v", profile)
	}
}

func TestUpdateEmailResetsVerifiedEvenWhenIdentical(t *testing.T) {
	profiles := setupProfileServiceTest(t)

	profile, err := profiles.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := profiles.MarkVerified(1, constants.VerifyTargetEmail); err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}

	// 写入与旧值完全相同的邮箱，验证标记仍被重置
	updated, err := profiles.Update(1, ProfileUpdateInput{Email: strPtr(profile.Email)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EmailVerified {
		t.Fatalf("expected email_verified reset on identical write")
	}
}

func TestUpdatePhoneResetsPhoneVerifiedOnly(t *testing.T) {
	profiles := setupProfileServiceTest(t)

	if _, err := profiles.MarkVerified(1, constants.VerifyTargetEmail); err != nil {
		t.Fatalf("mark email verified failed: %v", err)
	}
	if _, err := profiles.MarkVerified(1, constants.VerifyTargetPhone); err != nil {
		t.Fatalf("mark phone verified failed: %v", err)
	}

	updated, err := profiles.Update(1, ProfileUpdateInput{Phone: strPtr("+961 71 999 888")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PhoneVerified {
		t.Fatalf("expected phone_verified reset")
	}
	if !updated.EmailVerified {
		t.Fatalf("expected email_verified untouched")
	}
}

func TestMarkVerifiedRejectsUnknownTarget(t *testing.T) {
	profiles := setupProfileServiceTest(t)
	if _, err := profiles.MarkVerified(1, "fax"); err != ErrVerifyTargetInvalid {
		t.Fatalf("expected ErrVerifyTargetInvalid, got %v", err)
	}
}

func completeProfile() models.Profile {
	return models.Profile{
		FirstName:     "Dana",
		LastName:      "Khalil",
		Email:         "dana@example.com",
		EmailVerified: true,
		Phone:         "+961 70 123 456",
		PhoneVerified: true,
		Gender:        "prefer not to say",
		DateOfBirth:   "1995-04-12",
	}
}

func oneLocation() []models.DeliveryLocation {
	return []models.DeliveryLocation{{ID: "loc-1", AddressLine: "Main St", IsPrimary: true}}
}

func TestValidateCompleteProfilePasses(t *testing.T) {
	result := Validate(completeProfile(), oneLocation())
	if !result.IsValid || len(result.MissingFields) != 0 {
		t.Fatalf("expected valid, got %+v", result)
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	result := Validate(models.Profile{}, nil)
	if result.IsValid {
		t.Fatalf("expected invalid")
	}
	want := []string{"first_name", "last_name", "delivery_location", "email", "phone", "gender", "date_of_birth"}
	if len(result.MissingFields) != len(want) {
		t.Fatalf("expected all %d failures collected, got %v", len(want), result.MissingFields)
	}
	for i, field := range want {
		if result.MissingFields[i] != field {
			t.Fatalf("missing fields order mismatch: want %v got %v", want, result.MissingFields)
		}
	}
}

func TestValidateEmailRequiresPatternAndVerification(t *testing.T) {
	profile := completeProfile()
	profile.EmailVerified = false
	result := Validate(profile, oneLocation())
	if result.IsValid || len(result.MissingFields) != 1 || result.MissingFields[0] != "email" {
		t.Fatalf("expected only email missing, got %+v", result)
	}

	profile = completeProfile()
	profile.Email = "not-an-email"
	result = Validate(profile, oneLocation())
	if result.IsValid || len(result.MissingFields) != 1 || result.MissingFields[0] != "email" {
		t.Fatalf("expected only email missing for bad pattern, got %+v", result)
	}
}

func TestValidatePhoneSignificantChars(t *testing.T) {
	profile := completeProfile()
	profile.Phone = "12-34" // 仅 4 个有效字符
	result := Validate(profile, oneLocation())
	if result.IsValid || len(result.MissingFields) != 1 || result.MissingFields[0] != "phone" {
		t.Fatalf("expected only phone missing, got %+v", result)
	}
}

func TestValidateShortNames(t *testing.T) {
	profile := completeProfile()
	profile.FirstName = " A "
	result := Validate(profile, oneLocation())
	if result.IsValid || len(result.MissingFields) != 1 || result.MissingFields[0] != "first_name" {
		t.Fatalf("expected only first_name missing, got %+v", result)
	}
}
