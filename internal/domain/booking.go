package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookingStatus статус бронирования слота
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// SlotBooking бронирование одного места в слоте.
// Инвариант подсистемы: количество бронирований со статусом confirmed
// на слот всегда равно счетчику Slot.CurrentBookings и не превышает
// Slot.MaxBookings. Бронирования физически не удаляются.
type SlotBooking struct {
	ID          int64
	SlotID      int64
	UserID      int64
	VehicleID   int64
	ServiceID   *int64 // заполняется после создания заявки на обслуживание
	ServiceType string
	Status      BookingStatus
	Notes       *string

	// Денормализованные данные автомобиля для истории
	VehicleModel        *string
	VehicleLicensePlate *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled возвращает true, если бронирование отменено
func (b *SlotBooking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *SlotBooking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// BookingWithSlot бронирование с данными слота для списочных выдач
type BookingWithSlot struct {
	SlotBooking
	SlotDate time.Time
	SlotTime types.TimeString
}

// BookingsFilter фильтр для выборки бронирований по периоду
type BookingsFilter struct {
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
}
