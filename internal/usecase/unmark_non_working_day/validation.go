package unmark_non_working_day

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.Principal.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	if req.DayID <= 0 {
		return fmt.Errorf("%w: day_id must be positive", ErrInvalidInput)
	}

	return nil
}
