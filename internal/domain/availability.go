package domain

import (
	"time"

	"github.com/helmline/Charter-BookingService/pkg/types"
)

// AvailabilityWindow окно доступности капитана на день недели
// На один день недели допускается несколько окон (split shift)
type AvailabilityWindow struct {
	ID        int64
	CaptainID int64
	DayOfWeek int // 0 = Sunday ... 6 = Saturday, как в time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid проверяет инварианты окна: день в диапазоне 0-6, start < end
func (w *AvailabilityWindow) IsValid() bool {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return false
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// BlackoutDate дата, исключенная капитаном из бронирования
// Инвариант: уникальная пара (captain_id, date)
type BlackoutDate struct {
	ID        int64
	CaptainID int64
	Date      time.Time // Дата без времени
	Reason    *string
	CreatedAt time.Time
}

// CaptainSettings настройки бронирования капитана
type CaptainSettings struct {
	CaptainID          int64
	BufferMinutes      int    // Минимальное время между "сейчас" и началом слота
	AdvanceBookingDays int    // Горизонт бронирования в днях
	Location           string // Локация для погодной оценки
}
