package triptype

import "errors"

var (
	// ErrTripTypeNotFound возвращается, когда тип поездки не найден
	ErrTripTypeNotFound = errors.New("triptype.repository: trip type not found")

	// ErrVesselNotFound возвращается, когда судно не найдено
	ErrVesselNotFound = errors.New("triptype.repository: vessel not found")

	// ErrSettingsNotFound возвращается, когда у капитана нет строки настроек
	ErrSettingsNotFound = errors.New("triptype.repository: captain settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("triptype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("triptype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("triptype.repository: failed to scan row")
)
