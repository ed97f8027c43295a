package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	UserID int64     // ID пользователя (для логирования, не влияет на результат)
	Date   time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа с доступностью даты
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	Available bool      // false для выходных и нерабочих дней
	Reason    string    // Причина недоступности (пустая, если Available)
	Slots     []Slot    // Слоты даты (пустой список, если дата недоступна)
}

// Slot модель слота в ответе
type Slot struct {
	ID              int64            // ID слота
	Time            types.TimeString // Время начала слота
	MaxBookings     int              // Емкость слота
	CurrentBookings int              // Занято мест
	IsOpen          bool             // Доступен для бронирования (открыт и есть места)
}
