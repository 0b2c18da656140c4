package service

import (
	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/pricing"
	"github.com/shopora-next/internal/repository"
)

// CartView 购物车完整视图（行项 + 稍后购买 + 实时报价）
type CartView struct {
	Lines []models.CartLine `json:"lines"`
	Saved []models.CartLine `json:"saved"`
	Quote pricing.Quote     `json:"quote"`
}

// CartService 购物车服务
// 购物车与"稍后购买"为两个互斥集合，移动为搬移而非复制；
// 每次变更整体覆盖写入受影响集合的快照
type CartService struct {
	store      snapshotStore
	promotions *PromotionRegistry
	pricing    pricing.Config
}

// NewCartService 创建购物车服务
func NewCartService(snapshotRepo repository.SnapshotRepository, promotions *PromotionRegistry, pricingCfg pricing.Config) *CartService {
	return &CartService{
		store:      newSnapshotStore(snapshotRepo),
		promotions: promotions,
		pricing:    pricingCfg,
	}
}

func (s *CartService) loadCart(userID uint) (models.CartState, error) {
	var state models.CartState
	if _, err := s.store.load(s.store.key(constants.SnapshotKeyCart, userID), &state); err != nil {
		return models.CartState{}, err
	}
	if state.Lines == nil {
		state.Lines = []models.CartLine{}
	}
	return state, nil
}

func (s *CartService) loadSaved(userID uint) (models.SavedState, error) {
	var state models.SavedState
	if _, err := s.store.load(s.store.key(constants.SnapshotKeySaved, userID), &state); err != nil {
		return models.SavedState{}, err
	}
	if state.Lines == nil {
		state.Lines = []models.CartLine{}
	}
	return state, nil
}

func (s *CartService) saveCart(userID uint, state models.CartState) error {
	return s.store.save(s.store.key(constants.SnapshotKeyCart, userID), state)
}

func (s *CartService) saveSaved(userID uint, state models.SavedState) error {
	return s.store.save(s.store.key(constants.SnapshotKeySaved, userID), state)
}

// View 当前购物车视图，报价在每次读取时重新计算
func (s *CartService) View(userID uint) (*CartView, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.loadSaved(userID)
	if err != nil {
		return nil, err
	}
	promotion, err := s.promotions.Active(userID)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Lines: cart.Lines,
		Saved: saved.Lines,
		Quote: s.pricing.Quote(cart.Lines, promotion),
	}, nil
}

// AddToCart 加入购物车
// 已存在同商品行则数量 +1，首次加入时固化的价格与选项不被覆盖；否则新增数量为 1 的行
func (s *CartService) AddToCart(userID uint, snapshot models.CartLine) error {
	if snapshot.ID == "" {
		return ErrProductNotFound
	}
	cart, err := s.loadCart(userID)
	if err != nil {
		return err
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == snapshot.ID {
			cart.Lines[i].Quantity++
			return s.saveCart(userID, cart)
		}
	}
	snapshot.Quantity = 1
	cart.Lines = append(cart.Lines, snapshot)
	return s.saveCart(userID, cart)
}

// UpdateQuantity 设置行项数量；小于 1 等价于移除该行
func (s *CartService) UpdateQuantity(userID uint, id string, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(userID, id)
	}
	cart, err := s.loadCart(userID)
	if err != nil {
		return err
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == id {
			cart.Lines[i].Quantity = quantity
			return s.saveCart(userID, cart)
		}
	}
	return ErrLineNotFound
}

// RemoveFromCart 移除行项（不存在时幂等成功）
func (s *CartService) RemoveFromCart(userID uint, id string) error {
	cart, err := s.loadCart(userID)
	if err != nil {
		return err
	}
	filtered := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ID != id {
			filtered = append(filtered, line)
		}
	}
	cart.Lines = filtered
	return s.saveCart(userID, cart)
}

// SaveForLater 将行项连同当前数量从购物车搬移到稍后购买；不在购物车时为 no-op
func (s *CartService) SaveForLater(userID uint, id string) error {
	cart, err := s.loadCart(userID)
	if err != nil {
		return err
	}
	var moved *models.CartLine
	filtered := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ID == id && moved == nil {
			copied := line
			moved = &copied
			continue
		}
		filtered = append(filtered, line)
	}
	if moved == nil {
		return nil
	}
	cart.Lines = filtered

	saved, err := s.loadSaved(userID)
	if err != nil {
		return err
	}
	saved.Lines = append(saved.Lines, *moved)

	if err := s.saveCart(userID, cart); err != nil {
		return err
	}
	return s.saveSaved(userID, saved)
}

// MoveToCart 将稍后购买的行项搬回购物车
// 购物车已有同商品行则数量相加，否则原样插入；稍后购买集合无条件移除该行
func (s *CartService) MoveToCart(userID uint, id string) error {
	saved, err := s.loadSaved(userID)
	if err != nil {
		return err
	}
	var moved *models.CartLine
	filtered := saved.Lines[:0]
	for _, line := range saved.Lines {
		if line.ID == id && moved == nil {
			copied := line
			moved = &copied
			continue
		}
		filtered = append(filtered, line)
	}
	if moved == nil {
		return ErrLineNotFound
	}
	saved.Lines = filtered

	cart, err := s.loadCart(userID)
	if err != nil {
		return err
	}
	merged := false
	for i := range cart.Lines {
		if cart.Lines[i].ID == id {
			cart.Lines[i].Quantity += moved.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, *moved)
	}

	if err := s.saveSaved(userID, saved); err != nil {
		return err
	}
	return s.saveCart(userID, cart)
}

// RemoveFromSaved 仅从稍后购买集合删除
func (s *CartService) RemoveFromSaved(userID uint, id string) error {
	saved, err := s.loadSaved(userID)
	if err != nil {
		return err
	}
	filtered := saved.Lines[:0]
	for _, line := range saved.Lines {
		if line.ID != id {
			filtered = append(filtered, line)
		}
	}
	saved.Lines = filtered
	return s.saveSaved(userID, saved)
}

// ClearCart 清空购物车并清除当前优惠；稍后购买集合不受影响
func (s *CartService) ClearCart(userID uint) error {
	if err := s.saveCart(userID, models.CartState{Lines: []models.CartLine{}}); err != nil {
		return err
	}
	return s.promotions.Remove(userID)
}
