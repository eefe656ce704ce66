package run_sweep

import "context"

type SweeperService interface {
	SweepExpired(ctx context.Context) ([]int64, error)
	SendReminders(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
