package domain

import "time"

// Slot кандидат-интервал [Start, End) для бронирования
// Слот остается в выдаче даже когда недоступен: Available=false
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// RangesOverlap проверяет пересечение двух полуоткрытых интервалов
// [s1, e1) и [s2, e2) пересекаются тогда и только тогда, когда s1 < e2 && s2 < e1
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DayStatus статус дня в календарном обзоре доступности
type DayStatus string

const (
	DayPast          DayStatus = "past"
	DayBeyondHorizon DayStatus = "beyond_horizon"
	DayBlackedOut    DayStatus = "blacked_out"
	DayClosed        DayStatus = "closed"
	DayOpen          DayStatus = "open"
)

// DayAvailability ответ на грубый вопрос "можно ли бронировать в этот день"
type DayAvailability struct {
	Date   time.Time
	Status DayStatus
}
