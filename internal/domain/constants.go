package domain

// Slot generation constants
const (
	// Шаг генерации слотов фиксирован и не зависит от длительности поездки
	SlotStepMinutes = 30

	DefaultBufferMinutes      = 60 // 1 час
	DefaultAdvanceBookingDays = 30
)

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 50

	MinDurationMinutes = 30
	MaxDurationMinutes = 720 // 12 часов

	MaxReasonLength    = 500
	MaxGuestNameLength = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, блокирующие время судна
// Используется Conflict Detector'ом при подсчете пересечений
var ActiveStatuses = []BookingStatus{
	StatusPendingDeposit,
	StatusConfirmed,
	StatusWeatherHold,
	StatusRescheduled,
}

// TerminalStatuses финальные статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusExpired,
}
