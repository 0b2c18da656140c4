package service

import (
	"strings"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"
)

// PromotionRegistry 优惠码注册表
// 静态 码→折扣百分比 映射来自配置；同一用户同时至多一个生效优惠，后应用覆盖前者
type PromotionRegistry struct {
	codes map[string]float64
	store snapshotStore
}

// NewPromotionRegistry 创建优惠码注册表
func NewPromotionRegistry(codes map[string]float64, snapshotRepo repository.SnapshotRepository) *PromotionRegistry {
	normalized := make(map[string]float64, len(codes))
	for code, percent := range codes {
		normalized[CanonicalizePromoCode(code)] = percent
	}
	return &PromotionRegistry{
		codes: normalized,
		store: newSnapshotStore(snapshotRepo),
	}
}

// CanonicalizePromoCode 规范化优惠码：去空白 + 大写
func CanonicalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Active 获取当前生效优惠；无则返回 nil
func (s *PromotionRegistry) Active(userID uint) (*models.Promotion, error) {
	var promotion models.Promotion
	found, err := s.store.load(s.store.key(constants.SnapshotKeyPromo, userID), &promotion)
	if err != nil {
		return nil, err
	}
	if !found || promotion.Code == "" {
		return nil, nil
	}
	return &promotion, nil
}

// Apply 应用优惠码；命中则覆盖当前优惠并返回，未命中返回 ErrPromoCodeInvalid 且当前优惠不变
func (s *PromotionRegistry) Apply(userID uint, codeInput string) (*models.Promotion, error) {
	canonical := CanonicalizePromoCode(codeInput)
	percent, ok := s.codes[canonical]
	if !ok {
		return nil, ErrPromoCodeInvalid
	}
	promotion := models.Promotion{Code: canonical, DiscountPercent: percent}
	if err := s.store.save(s.store.key(constants.SnapshotKeyPromo, userID), promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

// Remove 清除当前优惠（幂等）
func (s *PromotionRegistry) Remove(userID uint) error {
	return s.store.delete(s.store.key(constants.SnapshotKeyPromo, userID))
}
