package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull возвращается, когда инкремент занятости невозможен - все места заняты
	ErrSlotFull = errors.New("slot.repository: slot is fully booked")

	// ErrOccupancyUnderflow возвращается при попытке декремента занятости ниже нуля
	ErrOccupancyUnderflow = errors.New("slot.repository: occupancy is already zero")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
