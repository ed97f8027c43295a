package domain

// Значения политики слотов по умолчанию.
// Применяются при первом обращении, если админ еще не настраивал расписание.
const (
	DefaultMaxBookingsPerSlot = 1
	DefaultBookingAdvanceDays = 30
)

// DefaultSlotTimes список времен слотов по умолчанию (5 слотов в день).
// Единственный источник дефолтного расписания - все операции читают его отсюда.
var DefaultSlotTimes = []string{"09:00", "11:00", "13:00", "15:00", "17:00"}

// Ограничения валидации политики
const (
	MinBookingsPerSlot = 1
	MaxBookingsPerSlot = 100
	MinAdvanceDays     = 1
	MaxAdvanceDays     = 365
	MaxSlotTimesPerDay = 48
	MaxNotesLength     = 500
	MaxReasonLength    = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WeekendReason причина недоступности, возвращаемая для суббот и воскресений
const WeekendReason = "Weekend - No bookings available"

// DefaultNonWorkingReason причина по умолчанию для нерабочего дня
const DefaultNonWorkingReason = "Holiday"
