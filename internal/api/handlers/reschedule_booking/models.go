package reschedule_booking

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewStart string `json:"newStart"` // RFC3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleRequest) ToServiceRequest(captainID int64) (*models.RescheduleRequest, error) {
	newStart, err := time.Parse(time.RFC3339, r.NewStart)
	if err != nil {
		return nil, err
	}
	return &models.RescheduleRequest{
		CaptainID: captainID,
		NewStart:  newStart,
	}, nil
}
