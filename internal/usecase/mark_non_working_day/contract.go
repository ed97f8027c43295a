package mark_non_working_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// NonWorkingDayRepository интерфейс репозитория нерабочих дней
type NonWorkingDayRepository interface {
	Create(ctx context.Context, day *domain.NonWorkingDay) (*domain.NonWorkingDay, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.NonWorkingDay, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
	SetAvailabilityByDate(ctx context.Context, date time.Time, available bool) error
	DecrementOccupancy(ctx context.Context, slotID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedBySlotID(ctx context.Context, slotID int64) ([]*domain.SlotBooking, error)
	Cancel(ctx context.Context, bookingID int64, reason string) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
