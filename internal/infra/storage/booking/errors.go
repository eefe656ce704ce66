package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда вставка/перенос нарушает exclusion constraint
	// (captain_id, tstzrange) — время судна уже занято другим активным бронированием
	ErrSlotTaken = errors.New("booking.repository: time range already booked")

	// ErrStatusConflict возвращается, когда guarded update не затронул ни одной строки:
	// статус бронирования уже не входит в ожидаемое множество
	ErrStatusConflict = errors.New("booking.repository: booking status conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
