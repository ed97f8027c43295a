package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64, principal domain.Principal) usecase.Request {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return usecase.Request{
		BookingID: bookingID,
		Principal: principal,
		Reason:    reason,
	}
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID          int64     `json:"bookingId"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellationReason"`
	CancelledAt        time.Time `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *usecase.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:          resp.BookingID,
		Status:             string(resp.Status),
		CancellationReason: resp.Reason,
		CancelledAt:        resp.CancelledAt,
	}
}
