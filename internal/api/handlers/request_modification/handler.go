package request_modification

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/infra/tokenstore"
	"github.com/helmline/Charter-BookingService/internal/service/modifications"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidNewStart    = "некорректный формат нового времени, ожидается RFC3339"
	msgNotFound           = "бронирование не найдено"
	msgBookingNotActive   = "бронирование в финальном статусе и не может быть изменено"
	msgNoChange           = "запрос не содержит изменений"
	msgPartyTooLarge      = "размер группы превышает вместимость судна"
	msgSlotNotAvailable   = "новое время пересекается с другим бронированием"
	msgInvalidDate        = "некорректная дата нового времени"
	msgDateTooFar         = "новое время слишком далеко в будущем"
	msgDayNotBookable     = "новая дата закрыта для бронирования"
	msgOutsideWindow      = "поездка не помещается в рабочие часы капитана"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	tokens  TokenResolver
	service ModificationService
	logger  Logger
}

func NewHandler(tokens TokenResolver, service ModificationService, logger Logger) *Handler {
	return &Handler{
		tokens:  tokens,
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/manage/{token}/modifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	bookingID, err := h.tokens.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			h.logger.Warn("POST /manage/{token}/modifications - Unknown management token")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /manage/{token}/modifications - Failed to resolve token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	var req RequestModificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /manage/{token}/modifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /manage/{token}/modifications - Invalid new start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNewStart)
		return
	}

	result, err := h.service.Request(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, modifications.ErrBookingNotFound):
			h.logger.Warn("POST /manage/{token}/modifications - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifications.ErrBookingNotActive):
			h.logger.Warn("POST /manage/{token}/modifications - Booking not active: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingNotActive)

		case errors.Is(err, modifications.ErrNoChange):
			h.logger.Warn("POST /manage/{token}/modifications - No change requested: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNoChange)

		case errors.Is(err, modifications.ErrPartySizeExceedsCapacity):
			h.logger.Warn("POST /manage/{token}/modifications - Party too large: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, modifications.ErrSlotNotAvailable):
			h.logger.Warn("POST /manage/{token}/modifications - Slot not available: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, modifications.ErrInvalidDate):
			h.logger.Warn("POST /manage/{token}/modifications - New start in the past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, modifications.ErrDateTooFarInFuture):
			h.logger.Warn("POST /manage/{token}/modifications - New start beyond horizon: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, modifications.ErrDayNotBookable):
			h.logger.Warn("POST /manage/{token}/modifications - New date not bookable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgDayNotBookable)

		case errors.Is(err, modifications.ErrOutsideWindow):
			h.logger.Warn("POST /manage/{token}/modifications - New time outside window: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, modifications.ErrInvalidInput):
			h.logger.Warn("POST /manage/{token}/modifications - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /manage/{token}/modifications - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /manage/{token}/modifications - Modification requested: booking_id=%d, request_id=%d",
		bookingID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
