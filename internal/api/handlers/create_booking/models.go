package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID      int64   `json:"slotId"`
	VehicleID   int64   `json:"vehicleId"`
	ServiceType string  `json:"serviceType"`
	Notes       *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) usecase.Request {
	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}

	return usecase.Request{
		UserID:      userID,
		SlotID:      r.SlotID,
		VehicleID:   r.VehicleID,
		ServiceType: r.ServiceType,
		Notes:       notes,
	}
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success     bool      `json:"success"`
	BookingID   int64     `json:"bookingId"`
	ServiceID   int64     `json:"serviceId"`
	SlotDate    string    `json:"slotDate"` // "2026-09-15"
	SlotTime    string    `json:"slotTime"` // "09:00"
	ServiceType string    `json:"serviceType"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *usecase.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:     true,
		BookingID:   resp.BookingID,
		ServiceID:   resp.ServiceID,
		SlotDate:    resp.SlotDate.Format(domain.DateFormat),
		SlotTime:    resp.SlotTime.String(),
		ServiceType: resp.ServiceType,
		Status:      string(resp.Status),
		CreatedAt:   resp.CreatedAt,
	}
}
