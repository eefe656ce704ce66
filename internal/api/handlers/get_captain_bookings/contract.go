package get_captain_bookings

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListForCaptain(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
