package service

import (
	"regexp"
	"strings"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ProfileUpdateInput 资料更新输入；nil 字段表示不修改
type ProfileUpdateInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
}

// ValidationResult 结算资格校验结果
type ValidationResult struct {
	IsValid       bool     `json:"is_valid"`
	MissingFields []string `json:"missing_fields"`
}

// ProfileService 用户资料服务
type ProfileService struct {
	store snapshotStore
}

// NewProfileService 创建资料服务
func NewProfileService(snapshotRepo repository.SnapshotRepository) *ProfileService {
	return &ProfileService{store: newSnapshotStore(snapshotRepo)}
}

// seedProfile 资料快照缺失时的演示默认值
func seedProfile() models.Profile {
	return models.Profile{
		FirstName: "Demo",
		LastName:  "Shopper",
		Email:     "demo.shopper@example.com",
		Phone:     "+961 70 123 456",
	}
}

// Get 获取资料；快照缺失时返回并落盘演示默认值
func (s *ProfileService) Get(userID uint) (models.Profile, error) {
	var profile models.Profile
	found, err := s.store.load(s.store.key(constants.SnapshotKeyProfile, userID), &profile)
	if err != nil {
		return models.Profile{}, err
	}
	if !found {
		profile = seedProfile()
		if err := s.save(userID, profile); err != nil {
			return models.Profile{}, err
		}
	}
	return profile, nil
}

func (s *ProfileService) save(userID uint, profile models.Profile) error {
	return s.store.save(s.store.key(constants.SnapshotKeyProfile, userID), profile)
}

// Update 更新资料
// 只要写入了 email 或 phone 字段，对应的已验证标记即重置为 false，
// 新值与旧值相同也不例外（验证永不跨值延续）
func (s *ProfileService) Update(userID uint, input ProfileUpdateInput) (models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return models.Profile{}, err
	}
	if input.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		profile.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		profile.Email = strings.TrimSpace(*input.Email)
		profile.EmailVerified = false
	}
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
		profile.PhoneVerified = false
	}
	if input.Gender != nil {
		profile.Gender = strings.TrimSpace(*input.Gender)
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = strings.TrimSpace(*input.DateOfBirth)
	}
	if err := s.save(userID, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// MarkVerified 验证通过后置位对应标记
func (s *ProfileService) MarkVerified(userID uint, targetType string) (models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return models.Profile{}, err
	}
	switch targetType {
	case constants.VerifyTargetEmail:
		profile.EmailVerified = true
	case constants.VerifyTargetPhone:
		profile.PhoneVerified = true
	default:
		return models.Profile{}, ErrVerifyTargetInvalid
	}
	if err := s.save(userID, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// Validate 结算资格校验：所有检查独立执行，失败项全部收集，不短路
func Validate(profile models.Profile, locations []models.DeliveryLocation) ValidationResult {
	missing := make([]string, 0)

	if len(strings.TrimSpace(profile.FirstName)) < constants.NameMinLength {
		missing = append(missing, "first_name")
	}
	if len(strings.TrimSpace(profile.LastName)) < constants.NameMinLength {
		missing = append(missing, "last_name")
	}
	if len(locations) == 0 {
		missing = append(missing, "delivery_location")
	}
	if !emailPattern.MatchString(strings.TrimSpace(profile.Email)) || !profile.EmailVerified {
		missing = append(missing, "email")
	}
	if significantPhoneChars(profile.Phone) < constants.PhoneMinDigits || !profile.PhoneVerified {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(profile.Gender) == "" {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(profile.DateOfBirth) == "" {
		missing = append(missing, "date_of_birth")
	}

	return ValidationResult{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
	}
}

// significantPhoneChars 统计手机号有效字符（数字与 +）
func significantPhoneChars(phone string) int {
	count := 0
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			count++
		}
	}
	return count
}
