package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateIfAbsent(ctx context.Context, s *domain.Slot) error
	GetByDateAndTime(ctx context.Context, date time.Time, t types.TimeString) (*domain.Slot, error)
}

// PolicyRepository интерфейс репозитория политики слотов
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.SlotPolicy, error)
	InitDefault(ctx context.Context) (*domain.SlotPolicy, error)
}

// NonWorkingDayRepository интерфейс репозитория нерабочих дней
type NonWorkingDayRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.NonWorkingDay, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
