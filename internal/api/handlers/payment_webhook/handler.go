package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
)

const (
	msgInvalidSignature = "некорректная подпись"
	msgInvalidPayload   = "некорректное тело события"
)

type Handler struct {
	verifier SignatureVerifier
	service  BookingService
	logger   Logger
}

func NewHandler(verifier SignatureVerifier, service BookingService, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		service:  service,
		logger:   logger,
	}
}

// Handle POST /api/v1/webhooks/payment
// Платежный шлюз ретраит события при не-2xx ответе, поэтому
// постоянные ошибки данных подтверждаются 200, чтобы не зациклить доставку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("POST /webhooks/payment - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if err := h.verifier.VerifyWebhookSignature(string(body), signature); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid signature: %v", err)
		handlers.RespondUnauthorized(w, msgInvalidSignature)
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	if event.Event != eventPaymentCaptured {
		h.logger.Info("POST /webhooks/payment - Ignoring event %q", event.Event)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	payment := event.Payload.Payment.Entity
	bookingID, err := payment.BookingID()
	if err != nil {
		h.logger.Warn("POST /webhooks/payment - %v", err)
		handlers.RespondJSON(w, http.StatusOK, nil)
		return
	}

	_, err = h.service.ConfirmDeposit(r.Context(), bookingID, payment.AmountMajor(), payment.ID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /webhooks/payment - Booking not found: booking_id=%d, payment=%s", bookingID, payment.ID)
			handlers.RespondJSON(w, http.StatusOK, nil)

		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrStatusConflict):
			// Платеж по уже истекшему или отмененному бронированию: подтверждаем
			// доставку, деньги вернет сверка
			h.logger.Warn("POST /webhooks/payment - Booking not payable: booking_id=%d, payment=%s", bookingID, payment.ID)
			handlers.RespondJSON(w, http.StatusOK, nil)

		default:
			h.logger.Error("POST /webhooks/payment - Failed to confirm deposit: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/payment - Deposit confirmed: booking_id=%d, payment=%s, amount=%.2f",
		bookingID, payment.ID, payment.AmountMajor())
	handlers.RespondJSON(w, http.StatusOK, nil)
}
