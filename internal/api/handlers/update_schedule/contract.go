package update_schedule

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ReplaceWindows(ctx context.Context, req *models.ReplaceWindowsRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
