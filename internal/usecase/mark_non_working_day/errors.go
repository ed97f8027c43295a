package mark_non_working_day

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_non_working_day: invalid input data")

	// ErrDateAlreadyMarked возвращается, когда дата уже отмечена нерабочей
	ErrDateAlreadyMarked = errors.New("mark_non_working_day: date is already marked as non-working")

	// ErrAccessDenied возвращается, когда операцию выполняет не админ
	ErrAccessDenied = errors.New("mark_non_working_day: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_non_working_day: internal error")
)
