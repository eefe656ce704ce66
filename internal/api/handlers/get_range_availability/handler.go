package get_range_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/domain"
	getRangeAvailability "github.com/helmline/Charter-BookingService/internal/usecase/get_range_availability"
)

const (
	msgInvalidCaptainID = "некорректный ID капитана"
	msgInvalidRange     = "некорректные параметры from/to, ожидается YYYY-MM-DD"
	msgRangeTooWide     = "запрошенный интервал слишком широкий"
)

type Handler struct {
	useCase GetRangeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRangeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/captains/{captainId}/availability?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	captainID, err := strconv.ParseInt(vars["captainId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /captains/{id}/availability - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /captains/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /captains/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getRangeAvailability.Request{
		CaptainID: captainID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRangeAvailability.ErrRangeTooWide):
			h.logger.Warn("GET /captains/{id}/availability - Range too wide: captain_id=%d", captainID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getRangeAvailability.ErrInvalidInput):
			h.logger.Warn("GET /captains/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /captains/{id}/availability - Failed: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/availability - Range retrieved: captain_id=%d, days=%d",
		captainID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
