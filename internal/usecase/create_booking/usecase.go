package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageSlot "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/garageservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase создание бронирования слота с сервисной заявкой
type UseCase struct {
	slots     SlotRepository
	bookings  BookingRepository
	tickets   ServiceTicketRepository
	garage    GarageServiceClient
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	slots SlotRepository,
	bookings BookingRepository,
	tickets ServiceTicketRepository,
	garage GarageServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:     slots,
		bookings:  bookings,
		tickets:   tickets,
		garage:    garage,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute бронирует слот для пользователя. Проверка владения автомобилем
// выполняется до транзакции, чтобы не держать блокировку слота на время
// сетевого вызова. Счетчик занятости и строка бронирования меняются в одной
// serializable-транзакции, поэтому перепродать место невозможно.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	vehicle, err := uc.garage.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, garageservice.ErrVehicleNotFound) {
			return nil, fmt.Errorf("%w: vehicle %d", ErrVehicleNotFound, req.VehicleID)
		}
		uc.logger.Error("create_booking: failed to fetch vehicle: vehicle_id=%d, error=%v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: Execute - failed to fetch vehicle: %v", ErrInternal, err)
	}

	if vehicle.UserID != req.UserID {
		uc.logger.Warn("create_booking: vehicle ownership mismatch: vehicle_id=%d, owner_id=%d, user_id=%d",
			req.VehicleID, vehicle.UserID, req.UserID)
		return nil, fmt.Errorf("%w: vehicle %d", ErrVehicleNotOwned, req.VehicleID)
	}

	var resp *Response

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slot, err := uc.slots.GetByIDForUpdate(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, storageSlot.ErrSlotNotFound) {
				return fmt.Errorf("%w: slot %d", ErrSlotNotFound, req.SlotID)
			}
			return fmt.Errorf("%w: Execute - failed to lock slot: %v", ErrInternal, err)
		}

		if !slot.IsAvailable {
			return fmt.Errorf("%w: slot %d", ErrSlotNotAvailable, req.SlotID)
		}
		if slot.IsFullyBooked() {
			return fmt.Errorf("%w: slot %d", ErrSlotFullyBooked, req.SlotID)
		}

		if err := uc.slots.IncrementOccupancy(ctx, req.SlotID); err != nil {
			if errors.Is(err, storageSlot.ErrSlotFull) {
				return fmt.Errorf("%w: slot %d", ErrSlotFullyBooked, req.SlotID)
			}
			return fmt.Errorf("%w: Execute - failed to increment occupancy: %v", ErrInternal, err)
		}

		var notes *string
		if req.Notes != "" {
			notes = ptr.Ptr(req.Notes)
		}

		booking, err := uc.bookings.Create(ctx, &domain.SlotBooking{
			SlotID:              req.SlotID,
			UserID:              req.UserID,
			VehicleID:           req.VehicleID,
			ServiceType:         req.ServiceType,
			Status:              domain.StatusConfirmed,
			Notes:               notes,
			VehicleModel:        ptr.Ptr(vehicle.Model),
			VehicleLicensePlate: ptr.Ptr(vehicle.LicensePlate),
		})
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to create booking: %v", ErrInternal, err)
		}

		scheduledAt, err := slot.ScheduledAt()
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to compute scheduled time: %v", ErrInternal, err)
		}

		ticket, err := uc.tickets.Create(ctx, &domain.ServiceTicket{
			ServiceType: req.ServiceType,
			ScheduledAt: scheduledAt,
			Status:      domain.TicketScheduled,
			Notes:       notes,
			VehicleID:   req.VehicleID,
			UserID:      req.UserID,
		})
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to create service ticket: %v", ErrInternal, err)
		}

		if err := uc.bookings.SetServiceID(ctx, booking.ID, ticket.ID); err != nil {
			return fmt.Errorf("%w: Execute - failed to link service ticket: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:   booking.ID,
			ServiceID:   ticket.ID,
			SlotDate:    slot.Date,
			SlotTime:    slot.Time,
			Status:      booking.Status,
			ServiceType: booking.ServiceType,
			CreatedAt:   booking.CreatedAt,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("create_booking: booking created: booking_id=%d, slot_id=%d, user_id=%d, vehicle_id=%d",
		resp.BookingID, req.SlotID, req.UserID, req.VehicleID)

	return resp, nil
}
