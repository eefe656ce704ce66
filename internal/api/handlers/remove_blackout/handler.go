package remove_blackout

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/service/availability"
)

const (
	msgMissingCaptainID = "отсутствует ID капитана"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound         = "blackout-дата не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/captain/blackouts/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /captain/blackouts/{date} - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	date, err := time.Parse(domain.DateFormat, mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /captain/blackouts/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.RemoveBlackout(r.Context(), captainID, date); err != nil {
		switch {
		case errors.Is(err, availability.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /captain/blackouts/{date} - Not found: captain_id=%d, date=%s",
				captainID, date.Format(domain.DateFormat))
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /captain/blackouts/{date} - Failed: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /captain/blackouts/{date} - Blackout removed: captain_id=%d, date=%s",
		captainID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
