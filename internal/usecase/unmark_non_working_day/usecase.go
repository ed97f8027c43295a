package unmark_non_working_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageNWD "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
)

// UseCase снятие отметки нерабочего дня
type UseCase struct {
	days      NonWorkingDayRepository
	slots     SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	days NonWorkingDayRepository,
	slots SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		days:      days,
		slots:     slots,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute удаляет запись нерабочего дня и открывает слоты даты обратно.
// Каскадно отмененные бронирования остаются отмененными: пользователи
// уже могли быть уведомлены, восстановление записи было бы сюрпризом.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if !req.Principal.IsAdmin() {
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, req.Principal.UserID)
	}

	var resp *Response

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		day, err := uc.days.GetByID(ctx, req.DayID)
		if err != nil {
			if errors.Is(err, storageNWD.ErrDayNotFound) {
				return fmt.Errorf("%w: day %d", ErrDayNotFound, req.DayID)
			}
			return fmt.Errorf("%w: Execute - failed to get non-working day: %v", ErrInternal, err)
		}

		if err := uc.days.Delete(ctx, req.DayID); err != nil {
			return fmt.Errorf("%w: Execute - failed to delete non-working day: %v", ErrInternal, err)
		}

		if err := uc.slots.SetAvailabilityByDate(ctx, day.Date, true); err != nil {
			return fmt.Errorf("%w: Execute - failed to reopen slots: %v", ErrInternal, err)
		}

		resp = &Response{Date: day.Date}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("unmark_non_working_day: date unmarked: date=%s, admin_id=%d",
		resp.Date.Format(domain.DateFormat), req.Principal.UserID)

	return resp, nil
}
