package domain

import "time"

// LogEntryType тип записи аудита
type LogEntryType string

const (
	LogBookingCreated        LogEntryType = "booking_created"
	LogStatusChanged         LogEntryType = "status_changed"
	LogPaymentReceived       LogEntryType = "payment_received"
	LogRefundIssued          LogEntryType = "refund_issued"
	LogScheduleChanged       LogEntryType = "schedule_changed"
	LogPartySizeChanged      LogEntryType = "party_size_changed"
	LogModificationRequested LogEntryType = "modification_requested"
	LogModificationResolved  LogEntryType = "modification_resolved"
	LogNotificationSent      LogEntryType = "notification_sent"
	LogNotificationFailed    LogEntryType = "notification_failed"
)

// BookingLog append-only запись аудита бронирования
// Никогда не изменяется и не удаляется
type BookingLog struct {
	ID          int64
	BookingID   int64
	EntryType   LogEntryType
	Description string
	OldValue    *string // JSON snapshot до изменения
	NewValue    *string // JSON snapshot после изменения
	ActorType   ActorType
	ActorID     *int64 // nil для guest и system
	CreatedAt   time.Time
}
