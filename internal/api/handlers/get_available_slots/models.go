package get_available_slots

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	getAvailableSlots "github.com/helmline/Charter-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse один слот в HTTP-ответе
type SlotResponse struct {
	Start     string `json:"start"` // RFC3339
	End       string `json:"end"`   // RFC3339
	Available bool   `json:"available"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date       string         `json:"date"` // "2026-07-04"
	CaptainID  int64          `json:"captainId"`
	TripTypeID int64          `json:"tripTypeId"`
	DayStatus  string         `json:"dayStatus"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:     slot.Start.Format(time.RFC3339),
			End:       slot.End.Format(time.RFC3339),
			Available: slot.Available,
		})
	}

	return &SlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		CaptainID:  resp.CaptainID,
		TripTypeID: resp.TripTypeID,
		DayStatus:  string(resp.DayStatus),
		Slots:      slots,
	}
}
