package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса создания бронирования
type Request struct {
	UserID      int64  // ID пользователя из заголовков gateway
	SlotID      int64  // ID материализованного слота
	VehicleID   int64  // ID автомобиля из GarageService
	ServiceType string // Тип обслуживания
	Notes       string // Комментарий пользователя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID   int64                // ID созданного бронирования
	ServiceID   int64                // ID сервисной заявки
	SlotDate    time.Time            // Дата слота
	SlotTime    types.TimeString     // Время слота
	Status      domain.BookingStatus // Статус бронирования (всегда confirmed)
	ServiceType string               // Тип обслуживания
	CreatedAt   time.Time            // Время создания
}
