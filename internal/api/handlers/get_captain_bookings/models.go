package get_captain_bookings

import (
	"strconv"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает модель сервиса из query-параметров
// Все параметры опциональны
func ToServiceRequest(captainID int64, vesselIDStr, statusStr, fromStr, toStr, includeInactiveStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{CaptainID: captainID}

	if vesselIDStr != "" {
		vesselID, err := strconv.ParseInt(vesselIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.VesselID = &vesselID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
