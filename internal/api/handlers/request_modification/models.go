package request_modification

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
)

// RequestModificationRequest HTTP request model
// Оба поля опциональны, но хотя бы одно должно быть задано
type RequestModificationRequest struct {
	NewStart     *string `json:"newStart,omitempty"` // RFC3339
	NewPartySize *int    `json:"newPartySize,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RequestModificationRequest) ToServiceRequest() (*models.RequestModificationRequest, error) {
	var newStart *time.Time
	if r.NewStart != nil {
		parsed, err := time.Parse(time.RFC3339, *r.NewStart)
		if err != nil {
			return nil, err
		}
		newStart = &parsed
	}

	return &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewStart:     newStart,
		NewPartySize: r.NewPartySize,
		Reason:       r.Reason,
	}, nil
}
