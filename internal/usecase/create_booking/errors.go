package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот закрыт для записи
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotFullyBooked возвращается, когда емкость слота исчерпана
	ErrSlotFullyBooked = errors.New("create_booking: slot is fully booked")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден в GarageService
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleNotOwned возвращается, когда автомобиль принадлежит другому пользователю
	ErrVehicleNotOwned = errors.New("create_booking: vehicle belongs to another user")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
