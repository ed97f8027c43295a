package mark_non_working_day

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса отметки нерабочего дня
type Request struct {
	Principal   domain.Principal // Кто отмечает (только админ)
	Date        time.Time        // Отмечаемая дата
	Reason      string           // Причина (опционально, по умолчанию Holiday)
	IsRecurring bool             // Повторяется ежегодно
}

// Response модель ответа с созданным нерабочим днем
type Response struct {
	Day               *domain.NonWorkingDay // Созданная запись
	CancelledBookings int                   // Сколько бронирований отменено каскадом
	ClosedSlots       int                   // Сколько слотов даты закрыто
}
