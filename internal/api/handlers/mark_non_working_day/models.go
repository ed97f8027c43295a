package mark_non_working_day

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/mark_non_working_day"
)

// MarkNonWorkingDayRequest HTTP request model
type MarkNonWorkingDayRequest struct {
	Date        string  `json:"date"` // "2026-09-15"
	Reason      *string `json:"reason,omitempty"`
	IsRecurring bool    `json:"isRecurring,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *MarkNonWorkingDayRequest) ToUseCaseRequest(principal domain.Principal) (usecase.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return usecase.Request{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return usecase.Request{
		Principal:   principal,
		Date:        date,
		Reason:      reason,
		IsRecurring: r.IsRecurring,
	}, nil
}

// MarkNonWorkingDayResponse HTTP response model
type MarkNonWorkingDayResponse struct {
	Day               models.NonWorkingDayResponse `json:"nonWorkingDay"`
	CancelledBookings int                          `json:"cancelledBookings"`
	ClosedSlots       int                          `json:"closedSlots"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *usecase.Response) *MarkNonWorkingDayResponse {
	return &MarkNonWorkingDayResponse{
		Day:               models.FromDomainNonWorkingDay(resp.Day),
		CancelledBookings: resp.CancelledBookings,
		ClosedSlots:       resp.ClosedSlots,
	}
}
