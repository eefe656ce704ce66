package run_sweep

import (
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
)

// SweepResponse результат одного прохода фоновой задачи
type SweepResponse struct {
	Processed  int     `json:"processed"`
	BookingIDs []int64 `json:"bookingIds,omitempty"`
}

type Handler struct {
	service SweeperService
	logger  Logger
}

func NewHandler(service SweeperService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSweepExpired POST /internal/jobs/sweep-expired
// Вызывается внешним планировщиком; проход идемпотентен,
// повторный запуск ничего не ломает
func (h *Handler) HandleSweepExpired(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.SweepExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/jobs/sweep-expired - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/jobs/sweep-expired - Expired %d booking(s)", len(ids))
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Processed: len(ids), BookingIDs: ids})
}

// HandleSendReminders POST /internal/jobs/send-reminders
func (h *Handler) HandleSendReminders(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SendReminders(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/jobs/send-reminders - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/jobs/send-reminders - Sent %d reminder(s)", count)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Processed: count})
}
