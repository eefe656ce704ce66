package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/infra/tokenstore"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyClosed      = "бронирование уже в финальном статусе"
	msgRefundFailed       = "не удалось провести возврат, попробуйте позже"
)

type Handler struct {
	tokens  TokenResolver
	service BookingService
	logger  Logger
}

func NewHandler(tokens TokenResolver, service BookingService, logger Logger) *Handler {
	return &Handler{
		tokens:  tokens,
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/manage/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookingID, err := h.tokens.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			h.logger.Warn("POST /manage/{token}/cancel - Unknown management token")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /manage/{token}/cancel - Failed to resolve token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	// Тело опционально: гость может отменить без указания причины
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /manage/{token}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		Actor:  domain.ActorGuest,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /manage/{token}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("POST /manage/{token}/cancel - Already closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyClosed)

		case errors.Is(err, bookings.ErrRefundFailed):
			h.logger.Error("POST /manage/{token}/cancel - Refund failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)

		default:
			h.logger.Error("POST /manage/{token}/cancel - Failed to cancel: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Бронирование в финальном статусе, ссылка управления больше не нужна
	if err := h.tokens.Revoke(r.Context(), token); err != nil {
		h.logger.Error("POST /manage/{token}/cancel - Failed to revoke token: booking_id=%d, error=%v", bookingID, err)
	}

	h.logger.Info("POST /manage/{token}/cancel - Booking cancelled: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
