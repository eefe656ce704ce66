package bookings

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/integrations/payments"
	"github.com/helmline/Charter-BookingService/internal/integrations/weather"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCaptainWithFilter(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error
	ConfirmPayment(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error
	Cancel(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error
	HoldForWeather(ctx context.Context, id int64, reason string) error
	Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time) error
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error)
	GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
}

// LogRepository интерфейс журнала бронирования
type LogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLog) error
	GetForBooking(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error)
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	Refund(paymentID string, amount float64) (*payments.RefundResult, error)
}

// WeatherClient интерфейс клиента погодного сервиса
type WeatherClient interface {
	AssessWithGracefulDegradation(ctx context.Context, location string, at time.Time) (*weather.Assessment, error)
}

// Mailer интерфейс отправки гостевых уведомлений
type Mailer interface {
	SendBookingConfirmed(to, guestName string, start time.Time, balanceDue float64) error
	SendWeatherHold(to, guestName string, start time.Time, reason string) error
	SendRescheduled(to, guestName string, newStart time.Time) error
	SendCancelled(to, guestName string, refunded float64) error
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
