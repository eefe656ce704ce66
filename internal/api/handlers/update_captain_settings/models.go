package update_captain_settings

import (
	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	BufferMinutes      int    `json:"bufferMinutes"`
	AdvanceBookingDays int    `json:"advanceBookingDays"`
	Location           string `json:"location,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(captainID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		CaptainID:          captainID,
		BufferMinutes:      r.BufferMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
		Location:           r.Location,
	}
}
