package add_blackout

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

// AddBlackoutRequest HTTP request model
type AddBlackoutRequest struct {
	Date   string  `json:"date"` // "2026-07-04"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddBlackoutRequest) ToServiceRequest(captainID int64) (*models.AddBlackoutRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.AddBlackoutRequest{
		CaptainID: captainID,
		Date:      date,
		Reason:    r.Reason,
	}, nil
}
