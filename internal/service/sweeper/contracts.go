package sweeper

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExpirePending(ctx context.Context, now time.Time) ([]int64, error)
	GetRemindersDue(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error)
	IncrementReminders(ctx context.Context, id int64) error
}

// LogRepository интерфейс журнала бронирования
type LogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLog) error
}

// Mailer интерфейс отправки гостевых уведомлений
type Mailer interface {
	SendReminder(to, guestName string, start time.Time, balanceDue float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
