package public

import (
	"errors"
	"strings"

	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
// 关键字同时匹配标题、卖家与分类，大小写不敏感；无关键字返回全量演示目录
func (h *Handler) GetProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	products := h.CatalogService.List(keyword)
	response.Success(c, gin.H{
		"items": products,
		"total": len(products),
	})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.CatalogService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, product)
}
