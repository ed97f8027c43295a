package bookings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithSlot, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
