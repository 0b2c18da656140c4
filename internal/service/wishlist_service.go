package service

import (
	"time"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"
)

// WishlistService 心愿单服务（与购物车互相独立的商品快照集合）
type WishlistService struct {
	store snapshotStore
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(snapshotRepo repository.SnapshotRepository) *WishlistService {
	return &WishlistService{store: newSnapshotStore(snapshotRepo)}
}

func (s *WishlistService) load(userID uint) (models.WishlistState, error) {
	var state models.WishlistState
	if _, err := s.store.load(s.store.key(constants.SnapshotKeyWishlist, userID), &state); err != nil {
		return models.WishlistState{}, err
	}
	if state.Items == nil {
		state.Items = []models.WishlistItem{}
	}
	return state, nil
}

func (s *WishlistService) save(userID uint, state models.WishlistState) error {
	return s.store.save(s.store.key(constants.SnapshotKeyWishlist, userID), state)
}

// List 心愿单列表（按加入顺序）
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return state.Items, nil
}

// Add 加入心愿单，按商品 ID 去重
func (s *WishlistService) Add(userID uint, item models.WishlistItem) error {
	if item.ID == "" {
		return ErrProductNotFound
	}
	state, err := s.load(userID)
	if err != nil {
		return err
	}
	for _, existing := range state.Items {
		if existing.ID == item.ID {
			return nil
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	state.Items = append(state.Items, item)
	return s.save(userID, state)
}

// Remove 移出心愿单（不存在时幂等成功）
func (s *WishlistService) Remove(userID uint, id string) error {
	state, err := s.load(userID)
	if err != nil {
		return err
	}
	filtered := state.Items[:0]
	for _, item := range state.Items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	state.Items = filtered
	return s.save(userID, state)
}

// Contains 判断商品是否在心愿单
func (s *WishlistService) Contains(userID uint, id string) (bool, error) {
	state, err := s.load(userID)
	if err != nil {
		return false, err
	}
	for _, item := range state.Items {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Clear 清空心愿单
func (s *WishlistService) Clear(userID uint) error {
	return s.save(userID, models.WishlistState{Items: []models.WishlistItem{}})
}
