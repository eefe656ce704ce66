package create_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
// Идентификация гостя (имя, email, телефон) проверяется декларативно
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// Старт должен быть выровнен по фиксированной сетке слотов
	if req.Start.Minute()%domain.SlotStepMinutes != 0 || req.Start.Second() != 0 || req.Start.Nanosecond() != 0 {
		return fmt.Errorf("%w: start must be aligned to %d-minute grid", ErrInvalidInput, domain.SlotStepMinutes)
	}

	return nil
}

// validateFitsWindow проверяет, что поездка целиком помещается в одно из окон
func validateFitsWindow(windows []*domain.AvailabilityWindow, date time.Time, start, end time.Time) error {
	for _, window := range windows {
		windowStart, err := window.StartTime.At(date)
		if err != nil {
			return fmt.Errorf("%w: invalid window start: %v", ErrInternal, err)
		}
		windowEnd, err := window.EndTime.At(date)
		if err != nil {
			return fmt.Errorf("%w: invalid window end: %v", ErrInternal, err)
		}

		if !start.Before(windowStart) && !end.After(windowEnd) {
			return nil
		}
	}
	return ErrOutsideWindow
}

// validateDate проверяет, что дата не в прошлом и внутри горизонта бронирования
func validateDate(start, now time.Time, advanceBookingDays int) error {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if startDay.Before(today) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if startDay.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
