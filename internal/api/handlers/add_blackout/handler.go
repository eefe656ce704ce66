package add_blackout

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDuplicateBlackout  = "дата уже закрыта"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/captain/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("POST /captain/blackouts - Missing captain ID")
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	var req AddBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /captain/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(captainID)
	if err != nil {
		h.logger.Warn("POST /captain/blackouts - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddBlackout(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDuplicateBlackout):
			h.logger.Warn("POST /captain/blackouts - Duplicate blackout: captain_id=%d, date=%s", captainID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBlackout)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /captain/blackouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /captain/blackouts - Failed: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captain/blackouts - Blackout added: captain_id=%d, date=%s", captainID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
