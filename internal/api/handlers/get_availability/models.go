package get_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID              int64  `json:"id"`
	Time            string `json:"time"` // "09:00"
	MaxBookings     int    `json:"maxBookings"`
	CurrentBookings int    `json:"currentBookings"`
	IsOpen          bool   `json:"isOpen"`
}

// AvailabilityResponse HTTP модель доступности даты
type AvailabilityResponse struct {
	Date      string         `json:"date"` // "2026-09-15"
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *usecase.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
		Reason:    resp.Reason,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:              s.ID,
			Time:            s.Time.String(),
			MaxBookings:     s.MaxBookings,
			CurrentBookings: s.CurrentBookings,
			IsOpen:          s.IsOpen,
		})
	}

	return out
}
