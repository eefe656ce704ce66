package complete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingCaptainID  = "отсутствует ID капитана"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgInvalidTransition = "бронирование нельзя завершить из текущего статуса"
	msgTripNotStarted    = "поездка еще не началась"
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

// Handle POST /api/v1/captain/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /captain/bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("POST /captain/bookings/{id}/complete - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	result, err := h.service.Complete(r.Context(), bookingID, captainID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /captain/bookings/{id}/complete - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /captain/bookings/{id}/complete - Access denied: booking_id=%d, captain_id=%d",
				bookingID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTripNotStarted):
			h.logger.Warn("POST /captain/bookings/{id}/complete - Trip not started: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTripNotStarted)

		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("POST /captain/bookings/{id}/complete - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /captain/bookings/{id}/complete - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captain/bookings/{id}/complete - Booking completed: booking_id=%d, captain_id=%d",
		bookingID, captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
