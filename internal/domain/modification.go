package domain

import "time"

// ActorType кто инициировал действие
type ActorType string

const (
	ActorGuest   ActorType = "guest"
	ActorCaptain ActorType = "captain"
	ActorSystem  ActorType = "system"
)

// ModificationStatus статус запроса на изменение бронирования
type ModificationStatus string

const (
	ModificationPending  ModificationStatus = "pending"
	ModificationApproved ModificationStatus = "approved"
	ModificationRejected ModificationStatus = "rejected"
)

// ModificationRequest запрос на изменение времени и/или размера группы
// Терминален после approve/reject; применение мутирует Booking через state machine
type ModificationRequest struct {
	ID          int64
	BookingID   int64
	RequestedBy ActorType

	// Запрошенные изменения: хотя бы одно поле должно быть задано
	NewStart     *time.Time
	NewPartySize *int

	// Snapshot исходных значений на момент запроса
	OriginalStart     time.Time
	OriginalPartySize int

	Status    ModificationStatus
	Reason    string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal возвращает true после принятия решения по запросу
func (m *ModificationRequest) IsTerminal() bool {
	return m.Status == ModificationApproved || m.Status == ModificationRejected
}

// HasChange возвращает true, если запрошено хотя бы одно изменение
func (m *ModificationRequest) HasChange() bool {
	return m.NewStart != nil || m.NewPartySize != nil
}
