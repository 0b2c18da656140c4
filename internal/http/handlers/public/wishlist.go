package public

import (
	"errors"
	"strings"

	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest 加入心愿单请求
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"items": items,
		"total": len(items),
	})
}

// AddWishlistItem 加入心愿单；同商品重复加入幂等
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
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

	item := models.WishlistItem{
		ID:            product.ID,
		Title:         product.Title,
		Image:         product.Image,
		Seller:        product.Seller,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Rating:        product.Rating,
		SoldCount:     product.SoldCount,
		Badges:        product.Badges,
	}
	if err := h.WishlistService.Add(uid, item); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// DeleteWishlistItem 移除心愿单商品（不存在时幂等成功）
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearWishlist 清空心愿单
func (h *Handler) ClearWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_update_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
