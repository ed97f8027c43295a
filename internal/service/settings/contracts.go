package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PolicyRepository интерфейс репозитория политики слотов
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.SlotPolicy, error)
	InitDefault(ctx context.Context) (*domain.SlotPolicy, error)
	Update(ctx context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error)
}

// NonWorkingDayRepository интерфейс репозитория нерабочих дней
type NonWorkingDayRepository interface {
	List(ctx context.Context) ([]*domain.NonWorkingDay, error)
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
