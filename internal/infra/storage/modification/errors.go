package modification

import "errors"

var (
	// ErrModificationNotFound возвращается, когда запрос на изменение не найден
	ErrModificationNotFound = errors.New("modification.repository: modification request not found")

	// ErrAlreadyDecided возвращается, когда guarded update не затронул ни одной строки:
	// запрос уже одобрен или отклонен
	ErrAlreadyDecided = errors.New("modification.repository: modification request already decided")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("modification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("modification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("modification.repository: failed to scan row")
)
