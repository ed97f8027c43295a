package garageservice

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("garageservice client: vehicle not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("garageservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("garageservice client: invalid response")
)
