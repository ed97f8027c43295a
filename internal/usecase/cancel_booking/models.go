package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса отмены бронирования
type Request struct {
	BookingID int64            // ID отменяемого бронирования
	Principal domain.Principal // Кто отменяет (владелец или админ)
	Reason    string           // Причина отмены (опционально)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	BookingID   int64                // ID бронирования
	Status      domain.BookingStatus // Статус после отмены (всегда cancelled)
	Reason      string               // Зафиксированная причина отмены
	CancelledAt time.Time            // Время отмены
}
