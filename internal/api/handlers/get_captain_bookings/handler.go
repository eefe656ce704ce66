package get_captain_bookings

import (
	"errors"
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/service/bookings"
)

const (
	msgMissingCaptainID = "отсутствует ID капитана"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidStatus    = "некорректный фильтр по статусу"
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

// Handle GET /api/v1/captain/bookings
// Query params: vesselId, status, from, to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("GET /captain/bookings - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		captainID,
		query.Get("vesselId"),
		query.Get("status"),
		query.Get("from"),
		query.Get("to"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /captain/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListForCaptain(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /captain/bookings - Invalid status filter: captain_id=%d", captainID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /captain/bookings - Failed to list bookings: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captain/bookings - Bookings retrieved: captain_id=%d, count=%d",
		captainID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
