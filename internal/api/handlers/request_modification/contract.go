package request_modification

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
)

type TokenResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

type ModificationService interface {
	Request(ctx context.Context, bookingID int64, req *models.RequestModificationRequest) (*models.ModificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
