package get_range_availability

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetAllWindows(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error)
	GetBlackoutsInRange(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
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
