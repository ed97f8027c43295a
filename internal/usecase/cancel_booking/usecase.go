package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageBooking "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	storageSlot "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
)

// Причина отмены по умолчанию, если пользователь ее не указал
const defaultCancellationReason = "Cancelled by user"

// UseCase отмена бронирования с освобождением места в слоте
type UseCase struct {
	bookings     BookingRepository
	slots        SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	bookings BookingRepository,
	slots SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:     bookings,
		slots:        slots,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отменяет бронирование. Смена статуса и декремент счетчика
// занятости выполняются в одной serializable-транзакции: место в слоте
// освобождается ровно один раз, повторная отмена отклоняется по статусу.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = defaultCancellationReason
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := uc.bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, storageBooking.ErrBookingNotFound) {
				return fmt.Errorf("%w: booking %d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - failed to lock booking: %v", ErrInternal, err)
		}

		if !req.Principal.IsAdmin() && booking.UserID != req.Principal.UserID {
			uc.logger.Warn("cancel_booking: access denied: booking_id=%d, owner_id=%d, user_id=%d",
				req.BookingID, booking.UserID, req.Principal.UserID)
			return fmt.Errorf("%w: booking %d", ErrAccessDenied, req.BookingID)
		}

		if booking.IsCancelled() {
			return fmt.Errorf("%w: booking %d", ErrAlreadyCancelled, req.BookingID)
		}

		if err := uc.bookings.Cancel(ctx, req.BookingID, reason); err != nil {
			return fmt.Errorf("%w: Execute - failed to cancel booking: %v", ErrInternal, err)
		}

		if err := uc.slots.DecrementOccupancy(ctx, booking.SlotID); err != nil {
			if errors.Is(err, storageSlot.ErrOccupancyUnderflow) {
				// Счетчик разошелся с бронированиями - нарушение инварианта хранилища
				uc.logger.Error("cancel_booking: occupancy underflow: slot_id=%d, booking_id=%d",
					booking.SlotID, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - failed to decrement occupancy: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:   req.BookingID,
			Status:      domain.StatusCancelled,
			Reason:      reason,
			CancelledAt: uc.timeProvider.Now(),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("cancel_booking: booking cancelled: booking_id=%d, user_id=%d", req.BookingID, req.Principal.UserID)

	return resp, nil
}
