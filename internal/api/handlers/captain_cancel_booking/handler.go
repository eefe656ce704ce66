package captain_cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingCaptainID   = "отсутствует ID капитана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyClosed      = "бронирование уже в финальном статусе"
	msgRefundFailed       = "не удалось провести возврат, попробуйте позже"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/captain/bookings/{bookingId}/cancel
// Отмена капитаном всегда с полным возвратом депозита
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /captain/bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("POST /captain/bookings/{id}/cancel - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /captain/bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверка принадлежности до отмены: Cancel общий для гостя и капитана
	if _, err := h.service.GetForCaptain(r.Context(), bookingID, captainID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /captain/bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /captain/bookings/{id}/cancel - Access denied: booking_id=%d, captain_id=%d",
				bookingID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /captain/bookings/{id}/cancel - Failed to load booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		Actor:  domain.ActorCaptain,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("POST /captain/bookings/{id}/cancel - Already closed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyClosed)

		case errors.Is(err, bookings.ErrRefundFailed):
			h.logger.Error("POST /captain/bookings/{id}/cancel - Refund failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)

		default:
			h.logger.Error("POST /captain/bookings/{id}/cancel - Failed to cancel: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captain/bookings/{id}/cancel - Booking cancelled: booking_id=%d, captain_id=%d",
		bookingID, captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
