package modifications

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrModificationNotFound возвращается, когда запрос на изменение не найден
	ErrModificationNotFound = errors.New("modification request not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому капитану
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingNotActive возвращается, когда бронирование в терминальном статусе
	ErrBookingNotActive = errors.New("booking is not active")

	// ErrNoChange возвращается, когда запрос не меняет ни время, ни размер группы
	ErrNoChange = errors.New("modification request has no change")

	// ErrAlreadyDecided возвращается, когда запрос уже одобрен или отклонен
	ErrAlreadyDecided = errors.New("modification request already decided")

	// ErrPartySizeExceedsCapacity возвращается, когда новая группа не помещается на судно
	ErrPartySizeExceedsCapacity = errors.New("party size exceeds vessel capacity")

	// ErrInvalidDate возвращается при новой дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда новая дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrDayNotBookable возвращается, когда новый день закрыт расписанием или blackout-датой
	ErrDayNotBookable = errors.New("day is not open for booking")

	// ErrOutsideWindow возвращается, когда поездка не помещается в окно доступности
	ErrOutsideWindow = errors.New("trip does not fit an availability window")

	// ErrSlotNotAvailable возвращается, когда новое время пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
