package decide_modification

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/service/modifications"
	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
)

const (
	msgInvalidRequestID = "некорректный ID запроса на изменение"
	msgMissingCaptainID = "отсутствует ID капитана"
	msgNotFound         = "запрос на изменение не найден"
	msgForbidden        = "доступ запрещен"
	msgAlreadyDecided   = "запрос уже одобрен или отклонен"
	msgBookingNotActive = "бронирование в финальном статусе"
	msgSlotNotAvailable = "новое время пересекается с другим бронированием"
	msgPartyTooLarge    = "размер группы превышает вместимость судна"
	msgDayNotBookable   = "новая дата больше не доступна для бронирования"
)

type decideFunc func(ctx context.Context, modificationID, captainID int64) (*models.ModificationResponse, error)

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

// HandleApprove POST /api/v1/captain/modifications/{requestId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "approve", h.service.Approve)
}

// HandleReject POST /api/v1/captain/modifications/{requestId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "reject", h.service.Reject)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, action string, decide decideFunc) {
	requestID, err := strconv.ParseInt(mux.Vars(r)["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /captain/modifications/{id}/%s - Invalid request ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		h.logger.Warn("POST /captain/modifications/{id}/%s - Missing captain ID", action)
		handlers.RespondUnauthorized(w, msgMissingCaptainID)
		return
	}

	result, err := decide(r.Context(), requestID, captainID)
	if err != nil {
		switch {
		case errors.Is(err, modifications.ErrModificationNotFound), errors.Is(err, modifications.ErrBookingNotFound):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Not found: request_id=%d", action, requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifications.ErrAccessDenied):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Access denied: request_id=%d, captain_id=%d",
				action, requestID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifications.ErrAlreadyDecided):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Already decided: request_id=%d", action, requestID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyDecided)

		case errors.Is(err, modifications.ErrBookingNotActive):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Booking not active: request_id=%d", action, requestID)
			handlers.RespondError(w, http.StatusConflict, msgBookingNotActive)

		case errors.Is(err, modifications.ErrSlotNotAvailable):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Slot not available: request_id=%d", action, requestID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, modifications.ErrPartySizeExceedsCapacity):
			h.logger.Warn("POST /captain/modifications/{id}/%s - Party too large: request_id=%d", action, requestID)
			handlers.RespondError(w, http.StatusConflict, msgPartyTooLarge)

		// Календарь изменился между запросом и решением
		case errors.Is(err, modifications.ErrInvalidDate),
			errors.Is(err, modifications.ErrDateTooFarInFuture),
			errors.Is(err, modifications.ErrDayNotBookable),
			errors.Is(err, modifications.ErrOutsideWindow):
			h.logger.Warn("POST /captain/modifications/{id}/%s - New date no longer bookable: request_id=%d, error=%v",
				action, requestID, err)
			handlers.RespondError(w, http.StatusConflict, msgDayNotBookable)

		default:
			h.logger.Error("POST /captain/modifications/{id}/%s - Failed: request_id=%d, error=%v", action, requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /captain/modifications/{id}/%s - Decision recorded: request_id=%d, status=%s",
		action, requestID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
