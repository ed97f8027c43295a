package update_slot_settings

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model. Незаданные поля не меняются.
type UpdateSettingsRequest struct {
	SlotTimes          []string `json:"slotTimes,omitempty"`
	MaxBookingsPerSlot *int     `json:"maxBookingsPerSlot,omitempty"`
	BookingAdvanceDays *int     `json:"bookingAdvanceDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(principal domain.Principal) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		Principal:          principal,
		SlotTimes:          r.SlotTimes,
		MaxBookingsPerSlot: r.MaxBookingsPerSlot,
		BookingAdvanceDays: r.BookingAdvanceDays,
	}
}
