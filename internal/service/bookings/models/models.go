package models

import (
	"errors"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение бронирований капитана
type ListBookingsRequest struct {
	CaptainID       int64      `json:"captainId"`
	VesselID        *int64     `json:"vesselId,omitempty"`        // Фильтр по судну (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить терминальные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.CaptainBookingsFilter, error) {
	filter := domain.CaptainBookingsFilter{
		CaptainID:       r.CaptainID,
		VesselID:        r.VesselID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.ActorType `json:"actor"`
	Reason string           `json:"reason"`
}

// WeatherHoldRequest запрос на приостановку из-за погоды
type WeatherHoldRequest struct {
	CaptainID int64  `json:"captainId"`
	Reason    string `json:"reason"`
}

// RescheduleRequest запрос на перенос из weather_hold
type RescheduleRequest struct {
	CaptainID int64     `json:"captainId"`
	NewStart  time.Time `json:"newStart"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64     `json:"id"`
	CaptainID      int64     `json:"captainId"`
	VesselID       *int64    `json:"vesselId,omitempty"`
	TripTypeID     int64     `json:"tripTypeId"`
	GuestName      string    `json:"guestName"`
	GuestEmail     string    `json:"guestEmail"`
	GuestPhone     string    `json:"guestPhone"`
	PartySize      int       `json:"partySize"`
	ScheduledStart time.Time `json:"scheduledStart"`
	ScheduledEnd   time.Time `json:"scheduledEnd"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`

	TotalPrice     float64 `json:"totalPrice"`
	DepositDue     float64 `json:"depositDue"`
	DepositPaid    float64 `json:"depositPaid"`
	RefundedAmount float64 `json:"refundedAmount"`
	BalanceDue     float64 `json:"balanceDue"`

	WeatherHoldReason  *string `json:"weatherHoldReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// LogEntryResponse запись журнала бронирования
type LogEntryResponse struct {
	ID          int64     `json:"id"`
	EntryType   string    `json:"entryType"`
	Description string    `json:"description"`
	OldValue    *string   `json:"oldValue,omitempty"`
	NewValue    *string   `json:"newValue,omitempty"`
	ActorType   string    `json:"actorType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingLogResponse журнал бронирования
type BookingLogResponse struct {
	BookingID int64              `json:"bookingId"`
	Entries   []LogEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CaptainID:          b.CaptainID,
		VesselID:           b.VesselID,
		TripTypeID:         b.TripTypeID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		PartySize:          b.PartySize,
		ScheduledStart:     b.ScheduledStart,
		ScheduledEnd:       b.ScheduledEnd,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		TotalPrice:         b.TotalPrice,
		DepositDue:         b.DepositDue,
		DepositPaid:        b.DepositPaid,
		RefundedAmount:     b.RefundedAmount,
		BalanceDue:         b.BalanceDue,
		WeatherHoldReason:  b.WeatherHoldReason,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

// FromDomainLog конвертирует журнал бронирования в DTO
func FromDomainLog(bookingID int64, entries []*domain.BookingLog) *BookingLogResponse {
	result := &BookingLogResponse{
		BookingID: bookingID,
		Entries:   make([]LogEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		result.Entries = append(result.Entries, LogEntryResponse{
			ID:          e.ID,
			EntryType:   string(e.EntryType),
			Description: e.Description,
			OldValue:    e.OldValue,
			NewValue:    e.NewValue,
			ActorType:   string(e.ActorType),
			CreatedAt:   e.CreatedAt,
		})
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusPendingDeposit, domain.StatusConfirmed, domain.StatusWeatherHold,
		domain.StatusRescheduled, domain.StatusCompleted, domain.StatusCancelled,
		domain.StatusNoShow, domain.StatusExpired:
		return status, nil
	}
	return "", ErrInvalidStatus
}
