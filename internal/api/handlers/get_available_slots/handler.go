package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/domain"
	getAvailableSlots "github.com/helmline/Charter-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCaptainID  = "некорректный ID капитана"
	msgInvalidTripTypeID = "некорректный параметр tripTypeId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTripTypeNotFound  = "тип поездки не найден"
	msgTripTypeInactive  = "тип поездки недоступен для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/captains/{captainId}/slots?tripTypeId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	captainID, err := strconv.ParseInt(vars["captainId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /captains/{id}/slots - Invalid captain ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	tripTypeID, err := strconv.ParseInt(r.URL.Query().Get("tripTypeId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /captains/{id}/slots - Invalid trip type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTripTypeID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /captains/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CaptainID:  captainID,
		TripTypeID: tripTypeID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTripTypeNotFound):
			h.logger.Warn("GET /captains/{id}/slots - Trip type not found: trip_type_id=%d", tripTypeID)
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, getAvailableSlots.ErrTripTypeInactive):
			h.logger.Warn("GET /captains/{id}/slots - Trip type inactive: trip_type_id=%d", tripTypeID)
			handlers.RespondBadRequest(w, msgTripTypeInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /captains/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTripTypeID)

		default:
			h.logger.Error("GET /captains/{id}/slots - Failed to get slots: captain_id=%d, error=%v", captainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /captains/{id}/slots - Slots retrieved: captain_id=%d, date=%s, count=%d",
		captainID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
