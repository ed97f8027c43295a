package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// UpdateSettingsRequest запрос на частичное обновление политики слотов.
// Незаданные поля сохраняют текущие значения.
type UpdateSettingsRequest struct {
	Principal          domain.Principal `json:"-"`
	SlotTimes          []string         `json:"slotTimes,omitempty"`          // "HH:MM", отсортированный список
	MaxBookingsPerSlot *int             `json:"maxBookingsPerSlot,omitempty"` // Емкость новых слотов
	BookingAdvanceDays *int             `json:"bookingAdvanceDays,omitempty"` // Горизонт бронирования в днях
}

// ToDomainUpdate конвертирует request в domain обновление политики
func (r *UpdateSettingsRequest) ToDomainUpdate() (domain.SlotPolicyUpdate, error) {
	update := domain.SlotPolicyUpdate{
		MaxBookingsPerSlot: r.MaxBookingsPerSlot,
		BookingAdvanceDays: r.BookingAdvanceDays,
	}

	if r.SlotTimes != nil {
		slotTimes := make([]types.TimeString, 0, len(r.SlotTimes))
		for _, raw := range r.SlotTimes {
			t, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return update, err
			}
			slotTimes = append(slotTimes, t)
		}
		update.SlotTimes = slotTimes
	}

	return update, nil
}

// Response модели

// SettingsResponse ответ с действующей политикой слотов
type SettingsResponse struct {
	SlotTimes          []string  `json:"slotTimes"`
	MaxBookingsPerSlot int       `json:"maxBookingsPerSlot"`
	BookingAdvanceDays int       `json:"bookingAdvanceDays"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FromDomainPolicy конвертирует domain политику в response
func FromDomainPolicy(p *domain.SlotPolicy) *SettingsResponse {
	slotTimes := make([]string, 0, len(p.SlotTimes))
	for _, t := range p.SlotTimes {
		slotTimes = append(slotTimes, t.String())
	}

	return &SettingsResponse{
		SlotTimes:          slotTimes,
		MaxBookingsPerSlot: p.MaxBookingsPerSlot,
		BookingAdvanceDays: p.BookingAdvanceDays,
		UpdatedAt:          p.UpdatedAt,
	}
}

// NonWorkingDayResponse ответ с данными нерабочего дня
type NonWorkingDayResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"` // "2026-09-15"
	Reason      string    `json:"reason"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NonWorkingDayListResponse ответ со списком нерабочих дней
type NonWorkingDayListResponse struct {
	Days  []NonWorkingDayResponse `json:"nonWorkingDays"`
	Total int                     `json:"total"`
}

// FromDomainNonWorkingDay конвертирует domain нерабочий день в response
func FromDomainNonWorkingDay(d *domain.NonWorkingDay) NonWorkingDayResponse {
	return NonWorkingDayResponse{
		ID:          d.ID,
		Date:        d.Date.Format(domain.DateFormat),
		Reason:      d.Reason,
		IsRecurring: d.IsRecurring,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// FromDomainNonWorkingDayList конвертирует список domain нерабочих дней в response
func FromDomainNonWorkingDayList(list []*domain.NonWorkingDay) *NonWorkingDayListResponse {
	resp := &NonWorkingDayListResponse{
		Days:  make([]NonWorkingDayResponse, 0, len(list)),
		Total: len(list),
	}

	for _, d := range list {
		resp.Days = append(resp.Days, FromDomainNonWorkingDay(d))
	}

	return resp
}
