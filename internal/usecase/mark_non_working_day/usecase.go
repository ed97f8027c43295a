package mark_non_working_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageNWD "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
)

// Причина отмены, фиксируемая в каскадно отмененных бронированиях
const cascadeReasonFormat = "Non-working day: %s"

// UseCase отметка даты нерабочим днем с каскадной отменой бронирований
type UseCase struct {
	days      NonWorkingDayRepository
	slots     SlotRepository
	bookings  BookingRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	days NonWorkingDayRepository,
	slots SlotRepository,
	bookings BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		days:      days,
		slots:     slots,
		bookings:  bookings,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute отмечает дату нерабочей. В одной serializable-транзакции создается
// запись нерабочего дня, закрываются все материализованные слоты даты и
// отменяются их подтвержденные бронирования с освобождением счетчиков.
// Нематериализованные даты закрываются самой записью: материализация
// проверяет нерабочие дни до создания слотов.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if !req.Principal.IsAdmin() {
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, req.Principal.UserID)
	}

	date := truncateToDate(req.Date)

	reason := req.Reason
	if reason == "" {
		reason = domain.DefaultNonWorkingReason
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := uc.days.GetByDate(ctx, date)
		if err != nil && !errors.Is(err, storageNWD.ErrDayNotFound) {
			return fmt.Errorf("%w: Execute - failed to check date: %v", ErrInternal, err)
		}
		if existing != nil {
			return fmt.Errorf("%w: date %s", ErrDateAlreadyMarked, date.Format(domain.DateFormat))
		}

		day, err := uc.days.Create(ctx, &domain.NonWorkingDay{
			Date:        date,
			Reason:      reason,
			IsRecurring: req.IsRecurring,
			CreatedBy:   req.Principal.UserID,
		})
		if err != nil {
			// Гонка двух админов по одной дате: уникальный индекс побеждает проверку
			if errors.Is(err, storageNWD.ErrDuplicateDate) {
				return fmt.Errorf("%w: date %s", ErrDateAlreadyMarked, date.Format(domain.DateFormat))
			}
			return fmt.Errorf("%w: Execute - failed to create non-working day: %v", ErrInternal, err)
		}

		slots, err := uc.slots.GetByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to lock slots: %v", ErrInternal, err)
		}

		if err := uc.slots.SetAvailabilityByDate(ctx, date, false); err != nil {
			return fmt.Errorf("%w: Execute - failed to close slots: %v", ErrInternal, err)
		}

		cascadeReason := fmt.Sprintf(cascadeReasonFormat, reason)
		cancelled := 0

		for _, slot := range slots {
			confirmed, err := uc.bookings.GetConfirmedBySlotID(ctx, slot.ID)
			if err != nil {
				return fmt.Errorf("%w: Execute - failed to list slot bookings: %v", ErrInternal, err)
			}

			for _, b := range confirmed {
				if err := uc.bookings.Cancel(ctx, b.ID, cascadeReason); err != nil {
					return fmt.Errorf("%w: Execute - failed to cancel booking %d: %v", ErrInternal, b.ID, err)
				}
				if err := uc.slots.DecrementOccupancy(ctx, slot.ID); err != nil {
					return fmt.Errorf("%w: Execute - failed to decrement occupancy: %v", ErrInternal, err)
				}
				cancelled++
			}
		}

		resp = &Response{
			Day:               day,
			CancelledBookings: cancelled,
			ClosedSlots:       len(slots),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("mark_non_working_day: date marked: date=%s, cancelled_bookings=%d, closed_slots=%d, admin_id=%d",
		date.Format(domain.DateFormat), resp.CancelledBookings, resp.ClosedSlots, req.Principal.UserID)

	return resp, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
