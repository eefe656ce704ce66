package get_range_availability

import (
	"github.com/helmline/Charter-BookingService/internal/domain"
	getRangeAvailability "github.com/helmline/Charter-BookingService/internal/usecase/get_range_availability"
)

// DayResponse статус одного дня в календарном обзоре
type DayResponse struct {
	Date   string `json:"date"` // "2026-07-04"
	Status string `json:"status"`
}

// RangeResponse HTTP response model
type RangeResponse struct {
	CaptainID int64         `json:"captainId"`
	Days      []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRangeAvailability.Response) *RangeResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		days = append(days, DayResponse{
			Date:   day.Date.Format(domain.DateFormat),
			Status: string(day.Status),
		})
	}
	return &RangeResponse{
		CaptainID: resp.CaptainID,
		Days:      days,
	}
}
