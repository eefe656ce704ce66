package payment_webhook

import (
	"context"

	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type SignatureVerifier interface {
	VerifyWebhookSignature(body, signature string) error
}

type BookingService interface {
	ConfirmDeposit(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
