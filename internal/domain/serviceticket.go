package domain

import "time"

// TicketStatus статус заявки на обслуживание.
// Дальнейшие переходы статуса принадлежат основному приложению,
// подсистема бронирования только создает заявку в статусе scheduled.
type TicketStatus string

const (
	TicketScheduled  TicketStatus = "scheduled"
	TicketInProgress TicketStatus = "in-progress"
	TicketCompleted  TicketStatus = "completed"
	TicketCancelled  TicketStatus = "cancelled"
)

// ServiceTicket заявка на обслуживание, создаваемая из подтвержденного
// бронирования. ScheduledAt - денормализованная метка времени,
// вычисленная из даты и времени слота.
type ServiceTicket struct {
	ID          int64
	ServiceType string
	ScheduledAt time.Time
	Status      TicketStatus
	Notes       *string
	VehicleID   int64
	UserID      int64
	CreatedAt   time.Time
}
