package get_available_slots

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// Request модель запроса на получение слотов на день
type Request struct {
	CaptainID  int64     // ID капитана
	TripTypeID int64     // ID типа поездки (определяет длительность)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
// Занятые слоты не скрываются: они возвращаются с Available=false,
// чтобы гость видел плотность расписания
type Response struct {
	Date       time.Time        // Дата, на которую запрашивались слоты
	CaptainID  int64            // ID капитана
	TripTypeID int64            // ID типа поездки
	DayStatus  domain.DayStatus // Статус дня (open / closed / blacked_out / past / beyond_horizon)
	Slots      []domain.Slot    // Слоты с фиксированным шагом 30 минут
}
