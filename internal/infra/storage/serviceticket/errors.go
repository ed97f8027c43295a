package serviceticket

import "errors"

var (
	// ErrTicketNotFound возвращается, когда заявка на обслуживание не найдена
	ErrTicketNotFound = errors.New("serviceticket.repository: service ticket not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("serviceticket.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("serviceticket.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("serviceticket.repository: failed to scan row")
)
