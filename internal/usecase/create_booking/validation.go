package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot_id must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicle_id must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: service_type is required", ErrInvalidInput)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
