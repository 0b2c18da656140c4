package service

import (
	"strings"

	"github.com/shopora-next/internal/constants"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/repository"

	"github.com/google/uuid"
)

// LocationInput 收货地址输入
type LocationInput struct {
	Label       string `json:"label"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	IsPrimary   bool   `json:"is_primary"`
}

// LocationService 收货地址服务
// 同一用户至多一个默认地址；本次结算选中地址是独立于默认地址的指针
type LocationService struct {
	store snapshotStore
}

// NewLocationService 创建收货地址服务
func NewLocationService(snapshotRepo repository.SnapshotRepository) *LocationService {
	return &LocationService{store: newSnapshotStore(snapshotRepo)}
}

// seedLocations 地址快照缺失时的默认地址
func seedLocations() []models.DeliveryLocation {
	return []models.DeliveryLocation{
		{
			ID:          uuid.NewString(),
			Label:       "Home",
			AddressLine: "Hamra Street, Building 12, 3rd floor",
			City:        "Beirut",
			Region:      "Beirut",
			Country:     "Lebanon",
			IsPrimary:   true,
		},
	}
}

func (s *LocationService) load(userID uint) (models.LocationState, error) {
	var state models.LocationState
	found, err := s.store.load(s.store.key(constants.SnapshotKeyLocations, userID), &state)
	if err != nil {
		return models.LocationState{}, err
	}
	if !found {
		state.Locations = seedLocations()
		if err := s.save(userID, state); err != nil {
			return models.LocationState{}, err
		}
	}
	if state.Locations == nil {
		state.Locations = []models.DeliveryLocation{}
	}
	return state, nil
}

func (s *LocationService) save(userID uint, state models.LocationState) error {
	return s.store.save(s.store.key(constants.SnapshotKeyLocations, userID), state)
}

// List 地址列表（按添加顺序）
func (s *LocationService) List(userID uint) ([]models.DeliveryLocation, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return state.Locations, nil
}

// Add 新增地址
// 首个地址强制设为默认；非首个地址按调用方传入的 is_primary 保存，
// 不会自动取消已有默认地址（排他语义仅由 SetPrimary 提供）
func (s *LocationService) Add(userID uint, input LocationInput) (*models.DeliveryLocation, error) {
	if strings.TrimSpace(input.AddressLine) == "" {
		return nil, ErrLocationInvalid
	}
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	location := models.DeliveryLocation{
		ID:          uuid.NewString(),
		Label:       strings.TrimSpace(input.Label),
		AddressLine: strings.TrimSpace(input.AddressLine),
		City:        strings.TrimSpace(input.City),
		Region:      strings.TrimSpace(input.Region),
		Country:     strings.TrimSpace(input.Country),
		Notes:       strings.TrimSpace(input.Notes),
		IsPrimary:   input.IsPrimary,
	}
	if len(state.Locations) == 0 {
		location.IsPrimary = true
	}
	state.Locations = append(state.Locations, location)
	if err := s.save(userID, state); err != nil {
		return nil, err
	}
	return &location, nil
}

// Update 按 ID 部分更新地址（空字段不覆盖）
func (s *LocationService) Update(userID uint, id string, input LocationInput) (*models.DeliveryLocation, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range state.Locations {
		if state.Locations[i].ID != id {
			continue
		}
		target := &state.Locations[i]
		if trimmed := strings.TrimSpace(input.Label); trimmed != "" {
			target.Label = trimmed
		}
		if trimmed := strings.TrimSpace(input.AddressLine); trimmed != "" {
			target.AddressLine = trimmed
		}
		if trimmed := strings.TrimSpace(input.City); trimmed != "" {
			target.City = trimmed
		}
		if trimmed := strings.TrimSpace(input.Region); trimmed != "" {
			target.Region = trimmed
		}
		if trimmed := strings.TrimSpace(input.Country); trimmed != "" {
			target.Country = trimmed
		}
		if trimmed := strings.TrimSpace(input.Notes); trimmed != "" {
			target.Notes = trimmed
		}
		updated := *target
		if err := s.save(userID, state); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, ErrLocationNotFound
}

// SetPrimary 设置默认地址（排他：其余地址全部取消默认）
func (s *LocationService) SetPrimary(userID uint, id string) error {
	state, err := s.load(userID)
	if err != nil {
		return err
	}
	found := false
	for i := range state.Locations {
		if state.Locations[i].ID == id {
			state.Locations[i].IsPrimary = true
			found = true
		} else {
			state.Locations[i].IsPrimary = false
		}
	}
	if !found {
		return ErrLocationNotFound
	}
	return s.save(userID, state)
}

// Remove 删除地址
// 删除的是默认地址且仍有剩余时，将存储顺序中的第一个剩余地址提升为默认；
// 删除的是当前选中地址时清除选中指针
func (s *LocationService) Remove(userID uint, id string) error {
	state, err := s.load(userID)
	if err != nil {
		return err
	}
	wasPrimary := false
	filtered := make([]models.DeliveryLocation, 0, len(state.Locations))
	removed := false
	for _, location := range state.Locations {
		if location.ID == id {
			removed = true
			wasPrimary = location.IsPrimary
			continue
		}
		filtered = append(filtered, location)
	}
	if !removed {
		return ErrLocationNotFound
	}
	if wasPrimary && len(filtered) > 0 {
		filtered[0].IsPrimary = true
	}
	state.Locations = filtered
	if err := s.save(userID, state); err != nil {
		return err
	}

	selected, err := s.selectedID(userID)
	if err != nil {
		return err
	}
	if selected == id {
		return s.store.delete(s.store.key(constants.SnapshotKeySelectedLocation, userID))
	}
	return nil
}

// Select 选中本次结算地址
func (s *LocationService) Select(userID uint, id string) error {
	state, err := s.load(userID)
	if err != nil {
		return err
	}
	for _, location := range state.Locations {
		if location.ID == id {
			return s.store.save(
				s.store.key(constants.SnapshotKeySelectedLocation, userID),
				models.SelectedLocationState{LocationID: id},
			)
		}
	}
	return ErrLocationNotFound
}

func (s *LocationService) selectedID(userID uint) (string, error) {
	var state models.SelectedLocationState
	if _, err := s.store.load(s.store.key(constants.SnapshotKeySelectedLocation, userID), &state); err != nil {
		return "", err
	}
	return state.LocationID, nil
}

// EffectiveSelection 本次结算生效地址：显式选中优先，否则回退默认地址
func (s *LocationService) EffectiveSelection(userID uint) (*models.DeliveryLocation, error) {
	state, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	selected, err := s.selectedID(userID)
	if err != nil {
		return nil, err
	}
	if selected != "" {
		for i := range state.Locations {
			if state.Locations[i].ID == selected {
				location := state.Locations[i]
				return &location, nil
			}
		}
	}
	for i := range state.Locations {
		if state.Locations[i].IsPrimary {
			location := state.Locations[i]
			return &location, nil
		}
	}
	return nil, nil
}

// FormatAddress 拼接订单上的冗余地址字符串
func FormatAddress(location *models.DeliveryLocation) string {
	if location == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{location.AddressLine, location.City, location.Region, location.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
