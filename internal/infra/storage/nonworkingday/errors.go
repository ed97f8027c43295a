package nonworkingday

import "errors"

var (
	// ErrDayNotFound возвращается, когда запись о нерабочем дне не найдена
	ErrDayNotFound = errors.New("nonworkingday.repository: non-working day not found")

	// ErrDuplicateDate возвращается при попытке повторно отметить дату нерабочей
	ErrDuplicateDate = errors.New("nonworkingday.repository: date is already marked as non-working")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("nonworkingday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("nonworkingday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("nonworkingday.repository: failed to scan row")
)
