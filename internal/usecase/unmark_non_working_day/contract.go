package unmark_non_working_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// NonWorkingDayRepository интерфейс репозитория нерабочих дней
type NonWorkingDayRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.NonWorkingDay, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	SetAvailabilityByDate(ctx context.Context, date time.Time, available bool) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
