package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/queue"
	"github.com/shopora-next/internal/repository"

	"github.com/google/uuid"
)

// allowedTransitions 订单状态流转表
// 线性推进；cancelled 与 delivery_failed 可从任意非终态进入
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending:        {constants.OrderStatusConfirmed, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusConfirmed:      {constants.OrderStatusPreparing, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusPreparing:      {constants.OrderStatusReady, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusReady:          {constants.OrderStatusOnTheWay, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusOnTheWay:       {constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusOutForDelivery: {constants.OrderStatusDelivered, constants.OrderStatusCancelled, constants.OrderStatusDeliveryFailed},
	constants.OrderStatusDelivered:      {},
	constants.OrderStatusDeliveryFailed: {},
	constants.OrderStatusCancelled:      {},
}

// CanTransition 判断订单状态流转是否合法
func CanTransition(from, to string) bool {
	nexts, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, next := range nexts {
		if next == to {
			return true
		}
	}
	return false
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	PaymentMethod string `json:"payment_method"`
}

// OrderService 订单服务
// 订单下单后除状态流转与评价挂载外不可变；订单号生成后不复用
type OrderService struct {
	store       snapshotStore
	carts       *CartService
	promotions  *PromotionRegistry
	locations   *LocationService
	profiles    *ProfileService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	snapshotRepo repository.SnapshotRepository,
	carts *CartService,
	promotions *PromotionRegistry,
	locations *LocationService,
	profiles *ProfileService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		store:       newSnapshotStore(snapshotRepo),
		carts:       carts,
		promotions:  promotions,
		locations:   locations,
		profiles:    profiles,
		queueClient: queueClient,
	}
}

func (s *OrderService) load(userID uint) (models.OrderState, error) {
	var state models.OrderState
	found, err := s.store.load(s.store.key(constants.SnapshotKeyOrders, userID), &state)
	if err != nil {
		return models.OrderState{}, err
	}
	if !found {
		state.Orders = seedOrders()
		if err := s.save(userID, state); err != nil {
			return models.OrderState{}, err
		}
	}
	if state.Orders == nil {
		state.Orders = []models.Order{}
	}
	return state, nil
}

func (s *OrderService) save(userID uint, state models.OrderState) error {
	return s.store.save(s.store.key(constants.SnapshotKeyOrders, userID), state)
}

// List 订单列表（最新在前）
func (s *OrderService) List(userID uint) ([]models.Order, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return state.Orders, nil
}

// GetByID 获取单个订单
func (s *OrderService) GetByID(userID uint, orderID string) (*models.Order, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID == orderID {
			order := state.Orders[i]
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// CheckoutEligibility 结算资格检查（资料完整性 + 地址存在性）
func (s *OrderService) CheckoutEligibility(userID uint) (ValidationResult, error) {
	profile, err := s.profiles.Get(userID)
	if err != nil {
		return ValidationResult{}, err
	}
	locations, err := s.locations.List(userID)
	if err != nil {
		return ValidationResult{}, err
	}
	return Validate(profile, locations), nil
}

// PlaceOrder 下单
// 资格校验未通过返回 ErrProfileIncomplete；成功后清空购物车与优惠并投递通知任务
func (s *OrderService) PlaceOrder(userID uint, input PlaceOrderInput) (*models.Order, error) {
	eligibility, err := s.CheckoutEligibility(userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.IsValid {
		return nil, ErrProfileIncomplete
	}

	view, err := s.carts.View(userID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	location, err := s.locations.EffectiveSelection(userID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationMissing
	}

	items := make([]models.OrderItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, models.OrderItem{
			ID:        line.ID,
			Title:     line.Title,
			Image:     line.Image,
			Seller:    line.Seller,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Options:   line.Options,
		})
	}

	order := models.Order{
		ID:            uuid.NewString(),
		Number:        generateOrderNo(),
		Date:          time.Now(),
		Status:        constants.OrderStatusPending,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Address:       FormatAddress(location),
		Subtotal:      view.Quote.Subtotal,
		Discount:      view.Quote.Discount,
		Shipping:      view.Quote.Shipping,
		Tax:           view.Quote.Tax,
		Total:         view.Quote.Total,
		PromoCode:     view.Quote.PromoCode,
		Items:         items,
	}

	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	state.Orders = append([]models.Order{order}, state.Orders...)
	if err := s.save(userID, state); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(userID); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPlacedNotify(queue.OrderPlacedNotifyPayload{
		UserID:      userID,
		OrderNumber: order.Number,
		Total:       order.Total.String(),
	}); err != nil {
		logger.Warnw("order_placed_notify_enqueue_failed", "user_id", userID, "order_number", order.Number, "error", err)
	}

	logger.Infow("order_placed", "user_id", userID, "order_number", order.Number, "total", order.Total.String())
	return &order, nil
}

// UpdateStatus 更新订单状态；不合法的流转返回 ErrOrderStatusInvalid
func (s *OrderService) UpdateStatus(userID uint, orderID, status string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, known := allowedTransitions[normalized]; !known {
		return nil, ErrOrderStatusInvalid
	}
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID != orderID {
			continue
		}
		if !CanTransition(state.Orders[i].Status, normalized) {
			return nil, ErrOrderStatusInvalid
		}
		state.Orders[i].Status = normalized
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		order := state.Orders[i]
		logger.Infow("order_status_updated", "user_id", userID, "order_number", order.Number, "status", normalized)
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

// validateReview 评价载荷校验：评分 [0,5]，图片至多 8 张
func validateReview(payload models.ReviewPayload) error {
	if payload.Rating < constants.ReviewRatingMin || payload.Rating > constants.ReviewRatingMax {
		return ErrReviewInvalid
	}
	if len(payload.Images) > constants.ReviewImagesMax {
		return ErrReviewInvalid
	}
	return nil
}

// UpdateOrderReview 设置/覆盖订单级评价
// 仅已送达订单可评价的前置条件由 handler 层保证，此处不复核状态
func (s *OrderService) UpdateOrderReview(userID uint, orderID string, payload models.ReviewPayload) (*models.Order, error) {
	if err := validateReview(payload); err != nil {
		return nil, err
	}
	payload.UpdatedAt = time.Now()
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID != orderID {
			continue
		}
		review := payload
		state.Orders[i].OrderReview = &review
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		order := state.Orders[i]
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

// UpdateItemReview 设置/覆盖单个行项评价，其余行项评价不受影响
func (s *OrderService) UpdateItemReview(userID uint, orderID, itemID string, payload models.ReviewPayload) (*models.Order, error) {
	if err := validateReview(payload); err != nil {
		return nil, err
	}
	payload.UpdatedAt = time.Now()
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID != orderID {
			continue
		}
		found := false
		for _, item := range state.Orders[i].Items {
			if item.ID == itemID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrLineNotFound
		}
		if state.Orders[i].ItemReviews == nil {
			state.Orders[i].ItemReviews = make(map[string]*models.ReviewPayload)
		}
		review := payload
		state.Orders[i].ItemReviews[itemID] = &review
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		order := state.Orders[i]
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

// DeleteOrderReview 仅清除订单级评价
func (s *OrderService) DeleteOrderReview(userID uint, orderID string) (*models.Order, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID != orderID {
			continue
		}
		state.Orders[i].OrderReview = nil
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		order := state.Orders[i]
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

// DeleteItemReview 删除单个行项评价；映射清空后整体置空
func (s *OrderService) DeleteItemReview(userID uint, orderID, itemID string) (*models.Order, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Orders {
		if state.Orders[i].ID != orderID {
			continue
		}
		delete(state.Orders[i].ItemReviews, itemID)
		if len(state.Orders[i].ItemReviews) == 0 {
			state.Orders[i].ItemReviews = nil
		}
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		order := state.Orders[i]
		return &order, nil
	}
	return nil, ErrOrderNotFound
}

// ListAllByUser 管理端按用户列出订单快照
func (s *OrderService) ListAllByUser() (map[uint][]models.Order, error) {
	snapshots, err := s.store.repo.ListByPrefix(constants.SnapshotKeyOrders + ":")
	if err != nil {
		return nil, err
	}
	result := make(map[uint][]models.Order, len(snapshots))
	for _, snapshot := range snapshots {
		rawID := strings.TrimPrefix(snapshot.Key, constants.SnapshotKeyOrders+":")
		userID, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			logger.Warnw("order_snapshot_key_invalid", "key", snapshot.Key)
			continue
		}
		var state models.OrderState
		if _, loadErr := s.store.load(snapshot.Key, &state); loadErr != nil {
			return nil, loadErr
		}
		result[uint(userID)] = state.Orders
	}
	return result, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

// seedOrders 订单快照缺失时的演示订单
func seedOrders() []models.Order {
	placedAt := time.Now().AddDate(0, 0, -12)
	return []models.Order{
		{
			ID:            uuid.NewString(),
			Number:        generateOrderNo(),
			Date:          placedAt,
			Status:        constants.OrderStatusDelivered,
			PaymentMethod: "cash_on_delivery",
			Address:       "Hamra Street, Building 12, 3rd floor, Beirut, Lebanon",
			Subtotal:      models.NewMoneyFromFloat(34.50),
			Discount:      models.NewMoneyFromFloat(0),
			Shipping:      models.NewMoneyFromFloat(5.99),
			Tax:           models.NewMoneyFromFloat(2.76),
			Total:         models.NewMoneyFromFloat(43.25),
			Items: []models.OrderItem{
				{
					ID:        "cm-350",
					Title:     "Ceramic Pour-Over Coffee Maker",
					Image:     "/images/products/coffeemaker.jpg",
					Seller:    "BrewCraft",
					UnitPrice: models.NewMoneyFromFloat(34.50),
					Quantity:  1,
				},
			},
		},
	}
}
