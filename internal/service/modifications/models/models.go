package models

import (
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// Request модели

// RequestModificationRequest запрос на изменение бронирования
// Хотя бы одно из NewStart / NewPartySize должно быть задано
type RequestModificationRequest struct {
	Actor        domain.ActorType `json:"actor"`
	NewStart     *time.Time       `json:"newStart,omitempty"`
	NewPartySize *int             `json:"newPartySize,omitempty"`
	Reason       string           `json:"reason"`
}

// Response модели

// ModificationResponse ответ с данными запроса на изменение
type ModificationResponse struct {
	ID                int64      `json:"id"`
	BookingID         int64      `json:"bookingId"`
	RequestedBy       string     `json:"requestedBy"`
	NewStart          *time.Time `json:"newStart,omitempty"`
	NewPartySize      *int       `json:"newPartySize,omitempty"`
	OriginalStart     time.Time  `json:"originalStart"`
	OriginalPartySize int        `json:"originalPartySize"`
	Status            string     `json:"status"`
	Reason            string     `json:"reason"`
	DecidedAt         *time.Time `json:"decidedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ModificationListResponse ответ со списком запросов на изменение
type ModificationListResponse struct {
	Modifications []ModificationResponse `json:"modifications"`
}

// Методы конвертации

// FromDomainModification конвертирует domain модель в DTO
func FromDomainModification(m *domain.ModificationRequest) *ModificationResponse {
	if m == nil {
		return nil
	}
	return &ModificationResponse{
		ID:                m.ID,
		BookingID:         m.BookingID,
		RequestedBy:       string(m.RequestedBy),
		NewStart:          m.NewStart,
		NewPartySize:      m.NewPartySize,
		OriginalStart:     m.OriginalStart,
		OriginalPartySize: m.OriginalPartySize,
		Status:            string(m.Status),
		Reason:            m.Reason,
		DecidedAt:         m.DecidedAt,
		CreatedAt:         m.CreatedAt,
	}
}

// FromDomainModificationList конвертирует список domain моделей в DTO
func FromDomainModificationList(requests []*domain.ModificationRequest) *ModificationListResponse {
	result := &ModificationListResponse{
		Modifications: make([]ModificationResponse, 0, len(requests)),
	}
	for _, m := range requests {
		result.Modifications = append(result.Modifications, *FromDomainModification(m))
	}
	return result
}
