package create_booking

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
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

// TokenStore интерфейс хранилища management-токенов
type TokenStore interface {
	Register(ctx context.Context, token string, bookingID int64) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	CreateDepositOrder(bookingID int64, amount float64) (*payments.DepositOrder, error)
}

// Mailer интерфейс отправки гостевых уведомлений
type Mailer interface {
	SendBookingCreated(to, guestName string, start time.Time, managementToken string, depositDue float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
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
