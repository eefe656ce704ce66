package remove_blackout

import (
	"context"
	"time"
)

type AvailabilityService interface {
	RemoveBlackout(ctx context.Context, captainID int64, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
