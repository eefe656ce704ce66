package get_captain_settings

import (
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
)

const (
	msgMissingCaptainID = "отсутствует ID капитана"
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

// Handle GET /api/v1/captain/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("GET /captain/settings - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	result, err := h.service.GetSettings(r.Context(), captainID)
	if err != nil {
		h.logger.Error("GET /captain/settings - Failed: captain_id=%d, error=%v", captainID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /captain/settings - Settings retrieved: captain_id=%d", captainID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
