package unmark_non_working_day

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса снятия отметки нерабочего дня
type Request struct {
	Principal domain.Principal // Кто снимает отметку (только админ)
	DayID     int64            // ID записи нерабочего дня
}

// Response модель ответа со снятой отметкой
type Response struct {
	Date time.Time // Дата, снова открытая для записи
}
