package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPendingDeposit, StatusConfirmed, true},
		{"pending to expired", StatusPendingDeposit, StatusExpired, true},
		{"pending to cancelled", StatusPendingDeposit, StatusCancelled, true},
		{"pending to completed", StatusPendingDeposit, StatusCompleted, false},
		{"confirmed to weather hold", StatusConfirmed, StatusWeatherHold, true},
		{"confirmed to no show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to expired", StatusConfirmed, StatusExpired, false},
		{"weather hold to rescheduled", StatusWeatherHold, StatusRescheduled, true},
		{"weather hold to completed", StatusWeatherHold, StatusCompleted, false},
		{"rescheduled back to weather hold", StatusRescheduled, StatusWeatherHold, true},
		{"rescheduled to completed", StatusRescheduled, StatusCompleted, true},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"expired is terminal", StatusExpired, StatusConfirmed, false},
		{"no show is terminal", StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestBooking_IsActive_IsTerminal(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.IsActive(), "status %s", status)
		assert.False(t, b.IsTerminal(), "status %s", status)
	}
	for _, status := range TerminalStatuses {
		b := &Booking{Status: status}
		assert.False(t, b.IsActive(), "status %s", status)
		assert.True(t, b.IsTerminal(), "status %s", status)
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	for _, status := range ActiveStatuses {
		b := &Booking{Status: status}
		assert.True(t, b.CanBeCancelled(), "status %s", status)
	}
	for _, status := range TerminalStatuses {
		b := &Booking{Status: status}
		assert.False(t, b.CanBeCancelled(), "status %s", status)
	}
}

func TestBooking_RecomputeBalance(t *testing.T) {
	b := &Booking{
		TotalPrice:  500,
		DepositPaid: 150,
	}
	b.RecomputeBalance()
	assert.Equal(t, 350.0, b.BalanceDue)

	// Возврат части депозита увеличивает остаток
	b.RefundedAmount = 150
	b.RecomputeBalance()
	assert.Equal(t, 500.0, b.BalanceDue)
}

func TestBooking_Overlaps(t *testing.T) {
	start := time.Date(2026, 7, 4, 9, 0, 0, 0, time.UTC)
	b := &Booking{
		ScheduledStart: start,
		ScheduledEnd:   start.Add(4 * time.Hour),
	}

	// Полуоткрытые интервалы: граница не считается пересечением
	assert.False(t, b.Overlaps(start.Add(-2*time.Hour), start))
	assert.False(t, b.Overlaps(start.Add(4*time.Hour), start.Add(6*time.Hour)))

	assert.True(t, b.Overlaps(start.Add(-time.Hour), start.Add(time.Hour)))
	assert.True(t, b.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.True(t, b.Overlaps(start.Add(3*time.Hour), start.Add(5*time.Hour)))
	assert.True(t, b.Overlaps(start.Add(-time.Hour), start.Add(5*time.Hour)))
}

func TestRangesOverlap(t *testing.T) {
	base := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)

	assert.True(t, RangesOverlap(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(2*time.Hour)))
	assert.False(t, RangesOverlap(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, RangesOverlap(base, base.Add(time.Hour), base.Add(2*time.Hour), base.Add(3*time.Hour)))
}

func TestModificationRequest_HasChange(t *testing.T) {
	newStart := time.Date(2026, 7, 5, 9, 0, 0, 0, time.UTC)
	partySize := 4

	assert.False(t, (&ModificationRequest{}).HasChange())
	assert.True(t, (&ModificationRequest{NewStart: &newStart}).HasChange())
	assert.True(t, (&ModificationRequest{NewPartySize: &partySize}).HasChange())
}

func TestModificationRequest_IsTerminal(t *testing.T) {
	assert.False(t, (&ModificationRequest{Status: ModificationPending}).IsTerminal())
	assert.True(t, (&ModificationRequest{Status: ModificationApproved}).IsTerminal())
	assert.True(t, (&ModificationRequest{Status: ModificationRejected}).IsTerminal())
}

func TestAvailabilityWindow_IsValid(t *testing.T) {
	valid := &AvailabilityWindow{DayOfWeek: 1, StartTime: "08:00", EndTime: "18:00"}
	assert.True(t, valid.IsValid())

	assert.False(t, (&AvailabilityWindow{DayOfWeek: 7, StartTime: "08:00", EndTime: "18:00"}).IsValid())
	assert.False(t, (&AvailabilityWindow{DayOfWeek: 1, StartTime: "18:00", EndTime: "08:00"}).IsValid())
	assert.False(t, (&AvailabilityWindow{DayOfWeek: 1, StartTime: "08:00", EndTime: "08:00"}).IsValid())
	assert.False(t, (&AvailabilityWindow{DayOfWeek: 1, StartTime: "8am", EndTime: "18:00"}).IsValid())
}
