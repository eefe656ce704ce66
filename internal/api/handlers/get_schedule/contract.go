package get_schedule

import (
	"context"
	"time"

	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetSchedule(ctx context.Context, captainID int64, from, to time.Time) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
