package update_schedule

import (
	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
)

// UpdateScheduleRequest HTTP request model
// Расписание заменяется целиком, частичных правок нет
type UpdateScheduleRequest struct {
	Windows []models.WindowInput `json:"windows"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(captainID int64) *models.ReplaceWindowsRequest {
	return &models.ReplaceWindowsRequest{
		CaptainID: captainID,
		Windows:   r.Windows,
	}
}
