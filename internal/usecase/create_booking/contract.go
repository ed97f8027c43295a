package create_booking

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/garageservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDForUpdate(ctx context.Context, slotID int64) (*domain.Slot, error)
	IncrementOccupancy(ctx context.Context, slotID int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error)
	SetServiceID(ctx context.Context, bookingID, serviceID int64) error
}

// ServiceTicketRepository интерфейс репозитория сервисных заявок
type ServiceTicketRepository interface {
	Create(ctx context.Context, t *domain.ServiceTicket) (*domain.ServiceTicket, error)
}

// GarageServiceClient интерфейс клиента GarageService
type GarageServiceClient interface {
	GetVehicle(ctx context.Context, vehicleID int64) (*garageservice.Vehicle, error)
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
