package admin

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserOrders 按用户分组的订单快照
type AdminUserOrders struct {
	UserID uint           `json:"user_id"`
	Orders []models.Order `json:"orders"`
}

// GetAdminOrders 获取全量订单（按用户分组，用户 ID 升序）
func (h *Handler) GetAdminOrders(c *gin.Context) {
	grouped, err := h.OrderService.ListAllByUser()
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	userIDs := make([]uint, 0, len(grouped))
	for uid := range grouped {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	result := make([]AdminUserOrders, 0, len(userIDs))
	total := 0
	for _, uid := range userIDs {
		result = append(result, AdminUserOrders{UserID: uid, Orders: grouped[uid]})
		total += len(grouped[uid])
	}
	response.Success(c, gin.H{
		"users": result,
		"total": total,
	})
}

// GetAdminUserOrders 获取指定用户的订单列表
func (h *Handler) GetAdminUserOrders(c *gin.Context) {
	rawUserID := c.Param("userId")
	userID, err := strconv.ParseUint(rawUserID, 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}

	orders, err := h.OrderService.List(uint(userID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id": uint(userID),
		"orders":  orders,
		"total":   len(orders),
	})
}

// UpdateOrderStatusRequest 订单状态流转请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminOrderStatus 推进订单状态
// 仅允许沿履约链路逐级推进；cancelled/delivery_failed 可从任意非终态进入
func (h *Handler) UpdateAdminOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	rawUserID := c.Param("userId")
	userID, err := strconv.ParseUint(rawUserID, 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	orderID := strings.TrimSpace(c.Param("orderId"))
	if orderID == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(uint(userID), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_order_status_updated",
		"admin_id", adminID,
		"user_id", uint(userID),
		"order_id", order.ID,
		"status", order.Status,
	)
	response.Success(c, order)
}
