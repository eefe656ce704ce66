package availability

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetAllWindows(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, captainID int64, windows []*domain.AvailabilityWindow) error
	CountWindows(ctx context.Context, captainID int64) (int, error)
	GetBlackoutsInRange(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error)
	AddBlackout(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error)
	RemoveBlackout(ctx context.Context, captainID int64, date time.Time) error
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
	UpsertCaptainSettings(ctx context.Context, settings *domain.CaptainSettings) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
