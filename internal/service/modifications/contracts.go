package modifications

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, newStart, newEnd time.Time) error
	UpdatePartySize(ctx context.Context, id int64, partySize int) error
}

// ModificationRepository интерфейс репозитория запросов на изменение
type ModificationRepository interface {
	Create(ctx context.Context, request *domain.ModificationRequest) (*domain.ModificationRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ModificationRequest, error)
	GetPendingForCaptain(ctx context.Context, captainID int64) ([]*domain.ModificationRequest, error)
	Decide(ctx context.Context, id int64, status domain.ModificationStatus, decidedAt time.Time) error
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetActiveWindowsForDay(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	HasBlackout(ctx context.Context, captainID int64, date time.Time) (bool, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error)
	GetVesselByID(ctx context.Context, id int64) (*domain.Vessel, error)
	GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
}

// LogRepository интерфейс журнала бронирования
type LogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLog) error
}

// Mailer интерфейс отправки гостевых уведомлений
type Mailer interface {
	SendRescheduled(to, guestName string, newStart time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
