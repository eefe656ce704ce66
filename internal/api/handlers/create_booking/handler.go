package create_booking

import (
	"errors"
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	createBooking "github.com/helmline/Charter-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTripTypeNotFound   = "тип поездки не найден"
	msgTripTypeInactive   = "тип поездки недоступен для бронирования"
	msgPartyTooLarge      = "размер группы превышает вместимость судна"
	msgInvalidDate        = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgDayNotBookable     = "выбранная дата закрыта для бронирования"
	msgOutsideWindow      = "поездка не помещается в рабочие часы капитана"
	msgTooSoon            = "слишком поздно для бронирования этого времени"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTripTypeNotFound):
			h.logger.Warn("POST /bookings - Trip type not found: trip_type_id=%d", req.TripTypeID)
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, createBooking.ErrTripTypeInactive):
			h.logger.Warn("POST /bookings - Trip type inactive: trip_type_id=%d", req.TripTypeID)
			handlers.RespondBadRequest(w, msgTripTypeInactive)

		case errors.Is(err, createBooking.ErrPartySizeExceedsCapacity):
			h.logger.Warn("POST /bookings - Party too large: captain_id=%d, party_size=%d", req.CaptainID, req.PartySize)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrDayNotBookable):
			h.logger.Warn("POST /bookings - Day not bookable: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondBadRequest(w, msgDayNotBookable)

		case errors.Is(err, createBooking.ErrOutsideWindow):
			h.logger.Warn("POST /bookings - Outside working window: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings - Too soon to book: captain_id=%d, start=%s", req.CaptainID, req.Start)
			handlers.RespondBadRequest(w, msgTooSoon)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: captain_id=%d, error=%v", req.CaptainID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, captain_id=%d", result.ID, req.CaptainID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
