package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetAdminBookingsRequest запрос на получение всех бронирований с фильтром по периоду
type GetAdminBookingsRequest struct {
	Principal domain.Principal `json:"-"`
	StartDate *time.Time       `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time       `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAdminBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	SlotID      int64  `json:"slotId"`
	UserID      int64  `json:"userId"`
	VehicleID   int64  `json:"vehicleId"`
	ServiceID   *int64 `json:"serviceId,omitempty"`
	SlotDate    string `json:"slotDate"` // "2026-09-15"
	SlotTime    string `json:"slotTime"` // "09:00"
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`

	// Денормализованные данные автомобиля
	VehicleModel        *string `json:"vehicleModel,omitempty"`
	VehicleLicensePlate *string `json:"vehicleLicensePlate,omitempty"`
	Notes               *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.BookingWithSlot) BookingResponse {
	resp := BookingResponse{
		ID:                  b.ID,
		SlotID:              b.SlotID,
		UserID:              b.UserID,
		VehicleID:           b.VehicleID,
		ServiceID:           b.ServiceID,
		SlotDate:            b.SlotDate.Format(domain.DateFormat),
		SlotTime:            b.SlotTime.String(),
		ServiceType:         b.ServiceType,
		Status:              string(b.Status),
		VehicleModel:        b.VehicleModel,
		VehicleLicensePlate: b.VehicleLicensePlate,
		Notes:               b.Notes,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain бронирований в response
func FromDomainBookingList(list []*domain.BookingWithSlot) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(list)),
		Total:    len(list),
	}

	for _, b := range list {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}

	return resp
}
