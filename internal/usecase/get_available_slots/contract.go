package get_available_slots

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByCaptainWithFilter получает бронирования капитана по фильтру
	GetByCaptainWithFilter(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetActiveWindowsForDay(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	HasBlackout(ctx context.Context, captainID int64, date time.Time) (bool, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error)
	GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
