package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не существует
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrAccessDenied возвращается при попытке отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
