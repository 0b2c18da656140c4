package public

import (
	"strings"

	"github.com/shopora-next/internal/http/response"
	"github.com/shopora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationRequest 收货地址请求
type LocationRequest struct {
	Label       string `json:"label"`
	AddressLine string `json:"address_line" binding:"required"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	IsPrimary   bool   `json:"is_primary"`
}

func (r LocationRequest) toInput() service.LocationInput {
	return service.LocationInput{
		Label:       r.Label,
		AddressLine: r.AddressLine,
		City:        r.City,
		Region:      r.Region,
		Country:     r.Country,
		Notes:       r.Notes,
		IsPrimary:   r.IsPrimary,
	}
}

// GetLocations 获取收货地址列表与当前结算选中地址
func (h *Handler) GetLocations(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	locations, err := h.LocationService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.location_fetch_failed", err)
		return
	}
	selected, err := h.LocationService.EffectiveSelection(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.location_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"locations": locations,
		"selected":  selected,
	})
}

// AddLocation 新增收货地址
func (h *Handler) AddLocation(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	location, err := h.LocationService.Add(uid, req.toInput())
	if err != nil {
		respondLocationMutationError(c, err)
		return
	}
	response.Success(c, location)
}

// UpdateLocation 更新收货地址
func (h *Handler) UpdateLocation(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.location_invalid", nil)
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	location, err := h.LocationService.Update(uid, id, req.toInput())
	if err != nil {
		respondLocationMutationError(c, err)
		return
	}
	response.Success(c, location)
}

// DeleteLocation 删除收货地址
func (h *Handler) DeleteLocation(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.LocationService.Remove(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondLocationMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetPrimaryLocation 设为默认地址（同一用户至多一个）
func (h *Handler) SetPrimaryLocation(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.LocationService.SetPrimary(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondLocationMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// SelectLocation 选择本次结算地址（独立于默认地址）
func (h *Handler) SelectLocation(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.LocationService.Select(uid, strings.TrimSpace(c.Param("id"))); err != nil {
		respondLocationMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"selected": true})
}
