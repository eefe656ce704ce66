package get_available_slots

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// generateSlots генерирует слоты дня по окнам доступности капитана
// Кандидаты идут с фиксированным шагом domain.SlotStepMinutes от начала окна;
// слот попадает в выдачу, только если поездка целиком помещается в окно
func generateSlots(
	windows []*domain.AvailabilityWindow,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
	bufferMinutes int,
	bookings []*domain.Booking,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0)

	// Слоты раньше now + buffer недоступны: капитану нужно время на подготовку
	minStart := now.Add(time.Duration(bufferMinutes) * time.Minute)

	for _, window := range windows {
		windowStart, err := window.StartTime.At(requestDate)
		if err != nil {
			return nil, err
		}
		windowEnd, err := window.EndTime.At(requestDate)
		if err != nil {
			return nil, err
		}

		for start := windowStart; ; start = start.Add(domain.SlotStepMinutes * time.Minute) {
			end := start.Add(time.Duration(durationMinutes) * time.Minute)

			// Поездка должна целиком помещаться в окно
			if end.After(windowEnd) {
				break
			}

			available := !start.Before(minStart) && !overlapsActiveBooking(start, end, bookings)

			slots = append(slots, domain.Slot{
				Start:     start,
				End:       end,
				Available: available,
			})
		}
	}

	return slots, nil
}

// overlapsActiveBooking проверяет пересечение слота с активными бронированиями
// Интервалы полуоткрытые: граничащие слот и бронирование не пересекаются
//
// Примеры:
// - Слот 11:30-13:30, бронирование 13:00-15:00 → ЕСТЬ пересечение (13:00-13:30)
// - Слот 11:30-13:30, бронирование 13:30-15:30 → НЕТ пересечения (граничат)
func overlapsActiveBooking(start, end time.Time, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}

		if domain.RangesOverlap(start, end, booking.ScheduledStart, booking.ScheduledEnd) {
			return true
		}
	}
	return false
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// isDateBeyondHorizon проверяет, что дата превышает горизонт бронирования
func isDateBeyondHorizon(date, now time.Time, advanceBookingDays int) bool {
	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return false
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return dateOnly.After(maxDate)
}
