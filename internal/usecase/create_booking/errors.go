package create_booking

import "errors"

var (
	// ErrTripTypeNotFound возвращается, когда тип поездки не найден
	ErrTripTypeNotFound = errors.New("trip type not found")

	// ErrTripTypeInactive возвращается, когда тип поездки выключен капитаном
	ErrTripTypeInactive = errors.New("trip type is not active")

	// ErrPartySizeExceedsCapacity возвращается, когда группа не помещается на судно
	ErrPartySizeExceedsCapacity = errors.New("party size exceeds vessel capacity")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrDayNotBookable возвращается, когда день закрыт расписанием или blackout-датой
	ErrDayNotBookable = errors.New("day is not open for booking")

	// ErrOutsideWindow возвращается, когда поездка не помещается в окно доступности
	ErrOutsideWindow = errors.New("trip does not fit an availability window")

	// ErrTooSoon возвращается, когда старт раньше now + buffer
	ErrTooSoon = errors.New("start time is too soon")

	// ErrSlotNotAvailable возвращается, когда время пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
