package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot слот записи на обслуживание. Натуральный ключ - пара (дата, время):
// слот создается лениво при первом запросе доступности на дату и никогда
// не удаляется, только закрывается (IsAvailable = false).
type Slot struct {
	ID              int64
	Date            time.Time
	Time            types.TimeString
	MaxBookings     int // емкость, копируется из политики при создании слота
	CurrentBookings int // количество подтвержденных бронирований
	IsAvailable     bool
	CreatedAt       time.Time
}

// IsFullyBooked возвращает true, если все места слота заняты
func (s *Slot) IsFullyBooked() bool {
	return s.CurrentBookings >= s.MaxBookings
}

// IsOpen возвращает true, если слот открыт для бронирования:
// не закрыт админом и имеет свободные места
func (s *Slot) IsOpen() bool {
	return s.IsAvailable && !s.IsFullyBooked()
}

// ScheduledAt совмещает дату слота с его временем суток
func (s *Slot) ScheduledAt() (time.Time, error) {
	return s.Time.At(s.Date)
}
