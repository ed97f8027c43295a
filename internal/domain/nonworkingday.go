package domain

import "time"

// NonWorkingDay нерабочий день, объявленный администратором.
// На такую дату слоты закрыты независимо от политики. По дате действует
// уникальное ограничение - не более одной записи на дату.
//
// IsRecurring хранится и отдается в списках, но при проверке доступности
// не разворачивается: сравнение идет только по точной дате.
type NonWorkingDay struct {
	ID          int64
	Date        time.Time
	Reason      string
	IsRecurring bool
	CreatedBy   int64 // ID администратора
	CreatedAt   time.Time
}
