package get_schedule

import (
	"net/http"
	"time"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/domain"
)

// Blackout-даты по умолчанию отдаются на год вперед
const defaultBlackoutHorizonDays = 365

const (
	msgMissingCaptainID = "отсутствует ID капитана"
	msgInvalidRange     = "некорректные параметры from/to, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/captain/schedule
// Query params: from, to (опционально, для интервала blackout-дат)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("GET /captain/schedule - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	now := time.Now()
	from := now
	to := now.AddDate(0, 0, defaultBlackoutHorizonDays)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /captain/schedule - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /captain/schedule - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		to = parsed
	}

	result, err := h.service.GetSchedule(r.Context(), captainID, from, to)
	if err != nil {
		h.logger.Error("GET /captain/schedule - Failed: captain_id=%d, error=%v", captainID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /captain/schedule - Schedule retrieved: captain_id=%d, windows=%d, blackouts=%d",
		captainID, len(result.Windows), len(result.Blackouts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
