package get_booking_log

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
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingCaptainID = "отсутствует ID капитана"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/captain/bookings/{bookingId}/log
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /captain/bookings/{id}/log - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("GET /captain/bookings/{id}/log - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	log, err := h.service.GetLog(r.Context(), bookingID, captainID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /captain/bookings/{id}/log - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /captain/bookings/{id}/log - Access denied: booking_id=%d, captain_id=%d", bookingID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /captain/bookings/{id}/log - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captain/bookings/{id}/log - Log retrieved: booking_id=%d, entries=%d",
		bookingID, len(log.Entries))
	handlers.RespondJSON(w, http.StatusOK, log)
}
