package public

import (
	"errors"
	"strings"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ReviewRequest 评价请求（订单级或行项级）
type ReviewRequest struct {
	Rating float64  `json:"rating"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

func (r ReviewRequest) toPayload() models.ReviewPayload {
	return models.ReviewPayload{
		Rating: r.Rating,
		Text:   strings.TrimSpace(r.Text),
		Images: r.Images,
	}
}

// GetOrders 获取订单列表（最新在前）
func (h *Handler) GetOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := h.OrderService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(uid, strings.TrimSpace(c.Param("id")))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// PlaceOrder 下单
// 结算资格未通过或购物车为空时拒绝；成功后购物车与优惠被清空
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.PlaceOrder(uid, service.PlaceOrderInput{
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondOrderPlaceError(c, err)
		return
	}

	requestLog(c).Infow("order_placed",
		"user_id", uid,
		"order_number", order.Number,
		"total", order.Total.String(),
	)
	response.Success(c, order)
}

// deliveredOrder 评价前置检查：仅已送达订单可评价
func (h *Handler) deliveredOrder(c *gin.Context, uid uint, orderID string) bool {
	order, err := h.OrderService.GetByID(uid, orderID)
	if err != nil {
		respondOrderReviewError(c, err)
		return false
	}
	if order.Status != constants.OrderStatusDelivered {
		respondOrderReviewError(c, service.ErrOrderNotDelivered)
		return false
	}
	return true
}

// UpdateOrderReview 提交/覆盖订单级评价
func (h *Handler) UpdateOrderReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID := strings.TrimSpace(c.Param("id"))
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.deliveredOrder(c, uid, orderID) {
		return
	}

	order, err := h.OrderService.UpdateOrderReview(uid, orderID, req.toPayload())
	if err != nil {
		respondOrderReviewError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrderReview 删除订单级评价（不存在时幂等成功）
func (h *Handler) DeleteOrderReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID := strings.TrimSpace(c.Param("id"))
	if !h.deliveredOrder(c, uid, orderID) {
		return
	}

	order, err := h.OrderService.DeleteOrderReview(uid, orderID)
	if err != nil {
		respondOrderReviewError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateItemReview 提交/覆盖行项评价
func (h *Handler) UpdateItemReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID := strings.TrimSpace(c.Param("id"))
	itemID := strings.TrimSpace(c.Param("itemId"))
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.deliveredOrder(c, uid, orderID) {
		return
	}

	order, err := h.OrderService.UpdateItemReview(uid, orderID, itemID, req.toPayload())
	if err != nil {
		respondOrderReviewError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteItemReview 删除行项评价（不存在时幂等成功）
func (h *Handler) DeleteItemReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID := strings.TrimSpace(c.Param("id"))
	itemID := strings.TrimSpace(c.Param("itemId"))
	if !h.deliveredOrder(c, uid, orderID) {
		return
	}

	order, err := h.OrderService.DeleteItemReview(uid, orderID, itemID)
	if err != nil {
		respondOrderReviewError(c, err)
		return
	}
	response.Success(c, order)
}
