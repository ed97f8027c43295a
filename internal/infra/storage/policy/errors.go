package policy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика слотов еще не сохранена
	ErrPolicyNotFound = errors.New("policy.repository: slot policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("policy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("policy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("policy.repository: failed to scan row")

	// ErrEncodeSlotTimes возвращается при ошибке сериализации списка времен
	ErrEncodeSlotTimes = errors.New("policy.repository: failed to encode slot times")

	// ErrDecodeSlotTimes возвращается при ошибке разбора списка времен из БД
	ErrDecodeSlotTimes = errors.New("policy.repository: failed to decode slot times")
)
