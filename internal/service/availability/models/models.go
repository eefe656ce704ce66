package models

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/types"
)

// Request модели

// WindowInput окно доступности в запросе на замену расписания
type WindowInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Active    bool   `json:"active"`
}

// ReplaceWindowsRequest запрос на полную замену недельного расписания
type ReplaceWindowsRequest struct {
	CaptainID int64         `json:"captainId"`
	Windows   []WindowInput `json:"windows"`
}

// AddBlackoutRequest запрос на закрытие даты
type AddBlackoutRequest struct {
	CaptainID int64     `json:"captainId"`
	Date      time.Time `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
}

// UpdateSettingsRequest запрос на изменение настроек капитана
type UpdateSettingsRequest struct {
	CaptainID          int64  `json:"captainId"`
	BufferMinutes      int    `json:"bufferMinutes"`
	AdvanceBookingDays int    `json:"advanceBookingDays"`
	Location           string `json:"location"`
}

// Response модели

// WindowResponse окно доступности
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// BlackoutResponse blackout-дата
type BlackoutResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"` // "2026-07-04"
	Reason *string `json:"reason,omitempty"`
}

// ScheduleResponse недельное расписание и blackout-даты капитана
type ScheduleResponse struct {
	CaptainID int64              `json:"captainId"`
	Windows   []WindowResponse   `json:"windows"`
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// SettingsResponse настройки капитана
type SettingsResponse struct {
	CaptainID          int64  `json:"captainId"`
	BufferMinutes      int    `json:"bufferMinutes"`
	AdvanceBookingDays int    `json:"advanceBookingDays"`
	Location           string `json:"location,omitempty"`
}

// Методы конвертации

// ToDomainWindow конвертирует WindowInput в domain модель
func (w *WindowInput) ToDomainWindow(captainID int64) (*domain.AvailabilityWindow, error) {
	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.AvailabilityWindow{
		CaptainID: captainID,
		DayOfWeek: w.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Active:    w.Active,
	}, nil
}

// FromDomainWindows конвертирует окна в DTO
func FromDomainWindows(windows []*domain.AvailabilityWindow) []WindowResponse {
	result := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, WindowResponse{
			ID:        w.ID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Active:    w.Active,
		})
	}
	return result
}

// FromDomainBlackouts конвертирует blackout-даты в DTO
func FromDomainBlackouts(blackouts []*domain.BlackoutDate) []BlackoutResponse {
	result := make([]BlackoutResponse, 0, len(blackouts))
	for _, b := range blackouts {
		result = append(result, BlackoutResponse{
			ID:     b.ID,
			Date:   b.Date.Format(domain.DateFormat),
			Reason: b.Reason,
		})
	}
	return result
}

// FromDomainSettings конвертирует настройки в DTO
func FromDomainSettings(s *domain.CaptainSettings) *SettingsResponse {
	return &SettingsResponse{
		CaptainID:          s.CaptainID,
		BufferMinutes:      s.BufferMinutes,
		AdvanceBookingDays: s.AdvanceBookingDays,
		Location:           s.Location,
	}
}
