package get_booking

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type TokenResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

type BookingService interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
