package list_modifications

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
)

type ModificationService interface {
	ListPending(ctx context.Context, captainID int64) (*models.ModificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
