package get_range_availability

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// MaxRangeDays максимальная ширина запрашиваемого интервала (один квартал)
const MaxRangeDays = 92

// Request модель запроса календарного обзора доступности
type Request struct {
	CaptainID int64     // ID капитана
	From      time.Time // Первый день интервала (включительно)
	To        time.Time // Последний день интервала (включительно)
}

// Response модель ответа: статус каждого дня интервала
// Обзор грубый — он отвечает "есть ли смысл открывать день",
// без генерации слотов и без учета занятости
type Response struct {
	CaptainID int64
	Days      []domain.DayAvailability
}
