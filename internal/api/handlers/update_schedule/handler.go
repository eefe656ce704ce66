package update_schedule

import (
	"errors"
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/service/availability"
)

const (
	msgMissingCaptainID   = "отсутствует ID капитана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное окно доступности"
	msgOverlappingWindows = "окна одного дня не должны пересекаться"
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

// Handle PUT /api/v1/captain/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("PUT /captain/schedule - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /captain/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWindows(r.Context(), req.ToServiceRequest(captainID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidWindow):
			h.logger.Warn("PUT /captain/schedule - Invalid window: captain_id=%d, error=%v", captainID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrOverlappingWindows):
			h.logger.Warn("PUT /captain/schedule - Overlapping windows: captain_id=%d", captainID)
			handlers.RespondBadRequest(w, msgOverlappingWindows)

		default:
			h.logger.Error("PUT /captain/schedule - Failed: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /captain/schedule - Schedule replaced: captain_id=%d, windows=%d",
		captainID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
