package domain

import (
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPendingDeposit BookingStatus = "pending_deposit"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusWeatherHold    BookingStatus = "weather_hold"
	StatusRescheduled    BookingStatus = "rescheduled"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusNoShow         BookingStatus = "no_show"
	StatusExpired        BookingStatus = "expired"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid            PaymentStatus = "unpaid"
	PaymentDepositPaid       PaymentStatus = "deposit_paid"
	PaymentFullyPaid         PaymentStatus = "fully_paid"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentFullyRefunded     PaymentStatus = "fully_refunded"
)

// transitions перечисляет допустимые переходы статусов
// Единственный источник правды для state machine; все мутации статуса
// проходят через CanTransition
var transitions = map[BookingStatus][]BookingStatus{
	StatusPendingDeposit: {StatusConfirmed, StatusWeatherHold, StatusCancelled, StatusExpired},
	StatusConfirmed:      {StatusWeatherHold, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusWeatherHold:    {StatusRescheduled, StatusCancelled},
	StatusRescheduled:    {StatusWeatherHold, StatusCompleted, StatusCancelled, StatusNoShow},
	// Терминальные статусы: переходов нет
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
	StatusExpired:   {},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking represents a charter trip booking
type Booking struct {
	ID         int64
	CaptainID  int64
	VesselID   *int64
	TripTypeID int64

	// Guest identity: гость не имеет аккаунта, только management token
	GuestName  string
	GuestEmail string
	GuestPhone string
	PartySize  int

	ScheduledStart time.Time
	ScheduledEnd   time.Time

	Status        BookingStatus
	PaymentStatus PaymentStatus

	TotalPrice     float64
	DepositDue     float64
	DepositPaid    float64
	RefundedAmount float64
	BalanceDue     float64

	// Идентификатор платежа в шлюзе, нужен для возвратов
	PaymentRef *string

	WeatherHoldReason *string
	RemindersSent     int

	// Опаковый гостевой credential, выдается при создании
	ManagementToken string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks vessel time
func (b *Booking) IsActive() bool {
	switch b.Status {
	case StatusPendingDeposit, StatusConfirmed, StatusWeatherHold, StatusRescheduled:
		return true
	}
	return false
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusExpired:
		return true
	}
	return false
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// Overlaps проверяет пересечение с полуоткрытым интервалом [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.ScheduledStart.Before(end) && start.Before(b.ScheduledEnd)
}

// RecomputeBalance пересчитывает balance_due по инварианту
// balance_due = total_price - (deposit_paid - refunded)
func (b *Booking) RecomputeBalance() {
	b.BalanceDue = b.TotalPrice - (b.DepositPaid - b.RefundedAmount)
}

// CaptainBookingsFilter фильтр для выборки бронирований капитана
type CaptainBookingsFilter struct {
	CaptainID       int64          // Обязательный параметр
	VesselID        *int64         // Фильтр по судну (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}
