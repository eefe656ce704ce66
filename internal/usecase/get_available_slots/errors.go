package get_available_slots

import "errors"

var (
	// ErrTripTypeNotFound возвращается, когда тип поездки не найден
	ErrTripTypeNotFound = errors.New("trip type not found")

	// ErrTripTypeInactive возвращается, когда тип поездки выключен капитаном
	ErrTripTypeInactive = errors.New("trip type is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
