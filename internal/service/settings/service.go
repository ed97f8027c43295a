package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек расписания: политика слотов и список нерабочих дней
type Service struct {
	policyRepo PolicyRepository
	dayRepo    NonWorkingDayRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	policyRepo PolicyRepository,
	dayRepo NonWorkingDayRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		policyRepo: policyRepo,
		dayRepo:    dayRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetSettings возвращает действующую политику слотов.
// При первом обращении создает дефолтную.
func (s *Service) GetSettings(ctx context.Context, principal domain.Principal) (*models.SettingsResponse, error) {
	if !principal.IsAdmin() {
		s.logger.Warn("GetSettings: access denied for user=%d", principal.UserID)
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, principal.UserID)
	}

	policy, err := s.getOrInitPolicy(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(policy), nil
}

// UpdateSettings частично обновляет политику слотов. Уже материализованные
// слоты сохраняют свою емкость - новые значения видят только последующие
// материализации.
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if !req.Principal.IsAdmin() {
		s.logger.Warn("UpdateSettings: access denied for user=%d", req.Principal.UserID)
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, req.Principal.UserID)
	}

	update, err := req.ToDomainUpdate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	var updated *domain.SlotPolicy

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		policy, err := s.getOrInitPolicy(ctx)
		if err != nil {
			return err
		}

		update.ApplyTo(policy)

		updated, err = s.policyRepo.Update(ctx, policy)
		if err != nil {
			s.logger.Error("UpdateSettings: failed to update policy: %v", err)
			return fmt.Errorf("%w: UpdateSettings - failed to update policy: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSettings: policy updated by admin=%d: slot_times=%d, max_bookings=%d, advance_days=%d",
		req.Principal.UserID, len(updated.SlotTimes), updated.MaxBookingsPerSlot, updated.BookingAdvanceDays)

	return models.FromDomainPolicy(updated), nil
}

// ListNonWorkingDays возвращает все нерабочие дни по возрастанию даты
func (s *Service) ListNonWorkingDays(ctx context.Context, principal domain.Principal) (*models.NonWorkingDayListResponse, error) {
	if !principal.IsAdmin() {
		s.logger.Warn("ListNonWorkingDays: access denied for user=%d", principal.UserID)
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, principal.UserID)
	}

	list, err := s.dayRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListNonWorkingDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListNonWorkingDays - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNonWorkingDayList(list), nil
}

func (s *Service) getOrInitPolicy(ctx context.Context) (*domain.SlotPolicy, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err == nil {
		return policy, nil
	}

	if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		s.logger.Error("getOrInitPolicy: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: getOrInitPolicy - failed to get policy: %v", ErrInternal, err)
	}

	policy, err = s.policyRepo.InitDefault(ctx)
	if err != nil {
		s.logger.Error("getOrInitPolicy: failed to init default policy: %v", err)
		return nil, fmt.Errorf("%w: getOrInitPolicy - failed to init default policy: %v", ErrInternal, err)
	}

	return policy, nil
}

// validateUpdate проверяет заданные поля обновления по ограничениям политики
func validateUpdate(u domain.SlotPolicyUpdate) error {
	if u.SlotTimes != nil {
		if len(u.SlotTimes) == 0 {
			return fmt.Errorf("%w: slot times list must not be empty", ErrInvalidInput)
		}
		if len(u.SlotTimes) > domain.MaxSlotTimesPerDay {
			return fmt.Errorf("%w: at most %d slot times per day", ErrInvalidInput, domain.MaxSlotTimesPerDay)
		}

		seen := make(map[string]struct{}, len(u.SlotTimes))
		for _, t := range u.SlotTimes {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%w: invalid slot time %q", ErrInvalidInput, t)
			}
			if _, ok := seen[t.String()]; ok {
				return fmt.Errorf("%w: duplicate slot time %q", ErrInvalidInput, t)
			}
			seen[t.String()] = struct{}{}
		}

		if !sort.SliceIsSorted(u.SlotTimes, func(i, j int) bool {
			return u.SlotTimes[i].IsBefore(u.SlotTimes[j])
		}) {
			return fmt.Errorf("%w: slot times must be sorted ascending", ErrInvalidInput)
		}
	}

	if u.MaxBookingsPerSlot != nil {
		if *u.MaxBookingsPerSlot < domain.MinBookingsPerSlot || *u.MaxBookingsPerSlot > domain.MaxBookingsPerSlot {
			return fmt.Errorf("%w: max bookings per slot must be between %d and %d",
				ErrInvalidInput, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
		}
	}

	if u.BookingAdvanceDays != nil {
		if *u.BookingAdvanceDays < domain.MinAdvanceDays || *u.BookingAdvanceDays > domain.MaxAdvanceDays {
			return fmt.Errorf("%w: booking advance days must be between %d and %d",
				ErrInvalidInput, domain.MinAdvanceDays, domain.MaxAdvanceDays)
		}
	}

	return nil
}
