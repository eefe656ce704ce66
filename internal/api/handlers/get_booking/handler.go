package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/infra/tokenstore"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
)

const (
	msgNotFound = "бронирование не найдено"
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

// Handle GET /api/v1/manage/{token}
// Гость управляет бронированием по management-токену из письма,
// без аккаунта и без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookingID, err := h.tokens.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			// Несуществующий и просроченный токен неразличимы для гостя
			h.logger.Warn("GET /manage/{token} - Unknown management token")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /manage/{token} - Failed to resolve token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /manage/{token} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /manage/{token} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /manage/{token} - Booking retrieved: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
