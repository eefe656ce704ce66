package list_modifications

import (
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
)

const (
	msgMissingCaptainID = "отсутствует ID капитана"
)

type Handler struct {
	service ModificationService
	logger  Logger
}

func NewHandler(service ModificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/captain/modifications
// Возвращает ожидающие решения запросы на изменение по всем бронированиям капитана
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("GET /captain/modifications - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	result, err := h.service.ListPending(r.Context(), captainID)
	if err != nil {
		h.logger.Error("GET /captain/modifications - Failed: captain_id=%d, error=%v", captainID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /captain/modifications - Pending requests retrieved: captain_id=%d, count=%d",
		captainID, len(result.Modifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
