package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageNWD "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
	storagePolicy "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	storageSlot "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase получение доступности слотов на дату с ленивой материализацией
type UseCase struct {
	slots        SlotRepository
	policies     PolicyRepository
	nonWorking   NonWorkingDayRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	slots SlotRepository,
	policies PolicyRepository,
	nonWorking NonWorkingDayRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		slots:        slots,
		policies:     policies,
		nonWorking:   nonWorking,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает слоты на дату. Слоты создаются лениво из действующей
// политики при первом обращении к дате; повторные обращения читают уже
// существующие строки с актуальной занятостью.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	date := truncateToDate(req.Date)

	// Выходные дни закрыты для записи всегда, без обращения к хранилищу
	if isWeekend(date) {
		return &Response{
			Date:      date,
			Available: false,
			Reason:    domain.WeekendReason,
			Slots:     []Slot{},
		}, nil
	}

	// Проверяем, не отмечена ли дата как нерабочий день
	nwd, err := uc.nonWorking.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, storageNWD.ErrDayNotFound) {
		uc.logger.Error("get_availability: failed to check non-working day: date=%s, error=%v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Execute - failed to check non-working day: %v", ErrInternal, err)
	}
	if nwd != nil {
		return &Response{
			Date:      date,
			Available: false,
			Reason:    nwd.Reason,
			Slots:     []Slot{},
		}, nil
	}

	policy, err := uc.getPolicy(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDate(uc.timeProvider.Now())
	if date.Before(today) {
		return nil, fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	horizon := today.AddDate(0, 0, policy.BookingAdvanceDays)
	if date.After(horizon) {
		return nil, fmt.Errorf("%w: date %s is beyond %d days",
			ErrDateTooFarInFuture, date.Format(domain.DateFormat), policy.BookingAdvanceDays)
	}

	result := make([]Slot, 0, len(policy.SlotTimes))
	for _, t := range policy.SlotTimes {
		slot, err := uc.materializeSlot(ctx, date, t, policy.MaxBookingsPerSlot)
		if err != nil {
			return nil, err
		}

		result = append(result, Slot{
			ID:              slot.ID,
			Time:            slot.Time,
			MaxBookings:     slot.MaxBookings,
			CurrentBookings: slot.CurrentBookings,
			IsOpen:          slot.IsOpen(),
		})
	}

	uc.logger.Info("get_availability: materialized slots: date=%s, count=%d, user_id=%d",
		date.Format(domain.DateFormat), len(result), req.UserID)

	return &Response{
		Date:      date,
		Available: true,
		Slots:     result,
	}, nil
}

// getPolicy возвращает действующую политику, создавая дефолтную при первом запросе
func (uc *UseCase) getPolicy(ctx context.Context) (*domain.SlotPolicy, error) {
	policy, err := uc.policies.Get(ctx)
	if err == nil {
		return policy, nil
	}

	if !errors.Is(err, storagePolicy.ErrPolicyNotFound) {
		uc.logger.Error("get_availability: failed to get slot policy: error=%v", err)
		return nil, fmt.Errorf("%w: getPolicy - failed to get slot policy: %v", ErrInternal, err)
	}

	policy, err = uc.policies.InitDefault(ctx)
	if err != nil {
		uc.logger.Error("get_availability: failed to init default slot policy: error=%v", err)
		return nil, fmt.Errorf("%w: getPolicy - failed to init default slot policy: %v", ErrInternal, err)
	}

	return policy, nil
}

// materializeSlot создает слот при отсутствии и возвращает актуальное состояние.
// Вставка условная, поэтому гонка двух запросов на одну дату безопасна:
// проигравший просто читает строку победителя.
func (uc *UseCase) materializeSlot(ctx context.Context, date time.Time, t types.TimeString, capacity int) (*domain.Slot, error) {
	candidate := &domain.Slot{
		Date:        date,
		Time:        t,
		MaxBookings: capacity,
		IsAvailable: true,
	}

	if err := uc.slots.CreateIfAbsent(ctx, candidate); err != nil {
		uc.logger.Error("get_availability: failed to create slot: date=%s, time=%s, error=%v",
			date.Format(domain.DateFormat), t, err)
		return nil, fmt.Errorf("%w: materializeSlot - failed to create slot: %v", ErrInternal, err)
	}

	slot, err := uc.slots.GetByDateAndTime(ctx, date, t)
	if err != nil {
		if errors.Is(err, storageSlot.ErrSlotNotFound) {
			// Слот существовал и был удален между вставкой и чтением — не ожидается
			uc.logger.Error("get_availability: slot vanished after materialization: date=%s, time=%s",
				date.Format(domain.DateFormat), t)
		}
		return nil, fmt.Errorf("%w: materializeSlot - failed to read slot: %v", ErrInternal, err)
	}

	return slot, nil
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
