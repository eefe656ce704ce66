package get_captain_settings

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetSettings(ctx context.Context, captainID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
