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

// CartOptionRequest 商品选项选择
type CartOptionRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string              `json:"product_id" binding:"required"`
	Options   []CartOptionRequest `json:"options"`
}

// UpdateCartQuantityRequest 修改数量请求
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车视图（含稍后购买与实时报价）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
// 价格与选项在加入时从商品目录固化；重复加入同商品仅数量 +1
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.CatalogService.GetByID(strings.TrimSpace(req.ProductID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	options := make([]models.OptionSelection, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, models.OptionSelection{
			Name:  opt.Name,
			Value: opt.Value,
		})
	}

	line := models.CartLine{
		ID:                product.ID,
		Title:             product.Title,
		Image:             product.Image,
		Seller:            product.Seller,
		UnitPrice:         product.Price,
		OriginalUnitPrice: product.OriginalPrice,
		Options:           options,
	}
	if err := h.CartService.AddToCart(uid, line); err != nil {
		respondCartMutationError(c, err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItemQuantity 设置行项数量
// 数量在接口层截断到上限；小于 1 等价于移除该行
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.line_not_found", nil)
		return
	}
	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	quantity := req.Quantity
	if quantity > constants.CartQuantityMax {
		quantity = constants.CartQuantityMax
	}
	if err := h.CartService.UpdateQuantity(uid, id, quantity); err != nil {
		respondCartMutationError(c, err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 移除购物车行项（不存在时幂等成功）
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveFromCart(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车（不影响稍后购买）
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(uid); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// SaveCartItemForLater 将行项搬移到稍后购买
func (h *Handler) SaveCartItemForLater(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.SaveForLater(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondCartMutationError(c, err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// MoveSavedItemToCart 将稍后购买行项搬回购物车
func (h *Handler) MoveSavedItemToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.MoveToCart(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondCartMutationError(c, err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// DeleteSavedItem 移除稍后购买行项
func (h *Handler) DeleteSavedItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveFromSaved(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ApplyPromoRequest 应用优惠码请求
type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyPromo 应用优惠码；后应用覆盖前者，不叠加
func (h *Handler) ApplyPromo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promotion, err := h.PromotionRegistry.Apply(uid, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrPromoCodeInvalid) {
			respondError(c, response.CodeBadRequest, "error.promo_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"promotion": promotion,
		"cart":      view,
	})
}

// RemovePromo 移除当前优惠（无优惠时幂等成功）
func (h *Handler) RemovePromo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.PromotionRegistry.Remove(uid); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}
