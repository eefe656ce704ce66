package get_booking_log

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetLog(ctx context.Context, id, captainID int64) (*models.BookingLogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
