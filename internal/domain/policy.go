package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotPolicy политика генерации слотов (единственная строка, настраивается админом).
// Изменение списка времен не трогает уже созданные слоты - новые значения
// видят только последующие материализации.
type SlotPolicy struct {
	ID                 int64
	SlotTimes          []types.TimeString
	MaxBookingsPerSlot int
	BookingAdvanceDays int
	UpdatedAt          time.Time
}

// DefaultSlotPolicy возвращает политику по умолчанию
func DefaultSlotPolicy() *SlotPolicy {
	slotTimes := make([]types.TimeString, len(DefaultSlotTimes))
	for i, t := range DefaultSlotTimes {
		slotTimes[i] = types.TimeString(t)
	}
	return &SlotPolicy{
		SlotTimes:          slotTimes,
		MaxBookingsPerSlot: DefaultMaxBookingsPerSlot,
		BookingAdvanceDays: DefaultBookingAdvanceDays,
	}
}

// SlotPolicyUpdate частичное обновление политики: применяются только заданные поля
type SlotPolicyUpdate struct {
	SlotTimes          []types.TimeString
	MaxBookingsPerSlot *int
	BookingAdvanceDays *int
}

// ApplyTo накладывает заданные поля обновления на политику
func (u *SlotPolicyUpdate) ApplyTo(p *SlotPolicy) {
	if u.SlotTimes != nil {
		p.SlotTimes = u.SlotTimes
	}
	if u.MaxBookingsPerSlot != nil {
		p.MaxBookingsPerSlot = *u.MaxBookingsPerSlot
	}
	if u.BookingAdvanceDays != nil {
		p.BookingAdvanceDays = *u.BookingAdvanceDays
	}
}
