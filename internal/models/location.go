package models

// DeliveryLocation 收货地址
type DeliveryLocation struct {
	ID          string `json:"id"`           // 不透明 ID（创建时生成）
	Label       string `json:"label"`        // 地址标签（如 Home）
	AddressLine string `json:"address_line"` // 详细地址
	City        string `json:"city"`         // 城市
	Region      string `json:"region"`       // 省/州/区
	Country     string `json:"country"`      // 国家
	Notes       string `json:"notes"`        // 备注
	IsPrimary   bool   `json:"is_primary"`   // 是否默认地址（同一用户至多一个）
}

// LocationState 收货地址快照
type LocationState struct {
	Locations []DeliveryLocation `json:"locations"` // 按添加顺序存储
}

// SelectedLocationState 本次结算选中地址（独立于默认地址）
type SelectedLocationState struct {
	LocationID string `json:"location_id"` // 为空表示未显式选择，回退默认地址
}
