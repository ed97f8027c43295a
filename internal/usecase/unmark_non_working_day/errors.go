package unmark_non_working_day

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("unmark_non_working_day: invalid input data")

	// ErrDayNotFound возвращается, когда запись нерабочего дня не существует
	ErrDayNotFound = errors.New("unmark_non_working_day: non-working day not found")

	// ErrAccessDenied возвращается, когда операцию выполняет не админ
	ErrAccessDenied = errors.New("unmark_non_working_day: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("unmark_non_working_day: internal error")
)
