package no_show_booking

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
	msgInvalidTransition = "неявку нельзя зафиксировать из текущего статуса"
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

// Handle POST /api/v1/captain/bookings/{bookingId}/no-show
// Депозит при неявке не возвращается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /captain/bookings/{id}/no-show - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("POST /captain/bookings/{id}/no-show - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	result, err := h.service.NoShow(r.Context(), bookingID, captainID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /captain/bookings/{id}/no-show - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /captain/bookings/{id}/no-show - Access denied: booking_id=%d, captain_id=%d",
				bookingID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTripNotStarted):
			h.logger.Warn("POST /captain/bookings/{id}/no-show - Trip not started: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTripNotStarted)

		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("POST /captain/bookings/{id}/no-show - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /captain/bookings/{id}/no-show - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captain/bookings/{id}/no-show - No-show recorded: booking_id=%d, captain_id=%d",
		bookingID, captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
