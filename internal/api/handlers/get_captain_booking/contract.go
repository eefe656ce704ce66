package get_captain_booking

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetForCaptain(ctx context.Context, id, captainID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
