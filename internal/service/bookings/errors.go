package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому капитану
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStatusConflict возвращается, когда статус изменился конкурентно
	ErrStatusConflict = errors.New("booking status changed concurrently")

	// ErrTripNotStarted возвращается при попытке завершить или отметить неявку
	// до времени начала поездки
	ErrTripNotStarted = errors.New("trip has not started yet")

	// ErrSlotNotAvailable возвращается, когда новое время пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrRefundFailed возвращается, когда платежный шлюз отклонил возврат
	// Отмена при этом не фиксируется
	ErrRefundFailed = errors.New("refund failed, cancellation aborted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
