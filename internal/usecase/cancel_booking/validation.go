package cancel_booking

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}

	if req.Principal.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
