package decide_modification

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
)

type ModificationService interface {
	Approve(ctx context.Context, modificationID, captainID int64) (*models.ModificationResponse, error)
	Reject(ctx context.Context, modificationID, captainID int64) (*models.ModificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
