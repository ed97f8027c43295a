package get_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageNWD "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
	storagePolicy "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// 2026-09-14 - понедельник
var (
	testNow      = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	testMonday   = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	testTuesday  = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	testSaturday = time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC)
	testSunday   = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeSlotRepo struct {
	slots  map[string]*domain.Slot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.Slot), nextID: 1}
}

func slotKey(date time.Time, t types.TimeString) string {
	return date.Format(domain.DateFormat) + " " + t.String()
}

func (r *fakeSlotRepo) CreateIfAbsent(_ context.Context, s *domain.Slot) error {
	key := slotKey(s.Date, s.Time)
	if _, ok := r.slots[key]; ok {
		return nil
	}
	created := *s
	created.ID = r.nextID
	r.nextID++
	r.slots[key] = &created
	return nil
}

func (r *fakeSlotRepo) GetByDateAndTime(_ context.Context, date time.Time, t types.TimeString) (*domain.Slot, error) {
	s, ok := r.slots[slotKey(date, t)]
	if !ok {
		return nil, fmt.Errorf("unexpected: slot not materialized")
	}
	copied := *s
	return &copied, nil
}

type fakePolicyRepo struct {
	policy *domain.SlotPolicy
}

func (r *fakePolicyRepo) Get(_ context.Context) (*domain.SlotPolicy, error) {
	if r.policy == nil {
		return nil, storagePolicy.ErrPolicyNotFound
	}
	copied := *r.policy
	return &copied, nil
}

func (r *fakePolicyRepo) InitDefault(_ context.Context) (*domain.SlotPolicy, error) {
	if r.policy == nil {
		r.policy = domain.DefaultSlotPolicy()
		r.policy.ID = 1
	}
	copied := *r.policy
	return &copied, nil
}

type fakeNonWorkingDayRepo struct {
	days map[string]*domain.NonWorkingDay
}

func newFakeNonWorkingDayRepo() *fakeNonWorkingDayRepo {
	return &fakeNonWorkingDayRepo{days: make(map[string]*domain.NonWorkingDay)}
}

func (r *fakeNonWorkingDayRepo) GetByDate(_ context.Context, date time.Time) (*domain.NonWorkingDay, error) {
	d, ok := r.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, storageNWD.ErrDayNotFound
	}
	return d, nil
}

func newTestUseCase(slots *fakeSlotRepo, policies *fakePolicyRepo, days *fakeNonWorkingDayRepo) *UseCase {
	return NewUseCase(slots, policies, days, &fakeTimeProvider{now: testNow}, noopLogger{})
}

func TestExecute_WeekendIsClosed(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	for _, date := range []time.Time{testSaturday, testSunday} {
		resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: date})
		require.NoError(t, err)

		assert.False(t, resp.Available)
		assert.Equal(t, domain.WeekendReason, resp.Reason)
		assert.Empty(t, resp.Slots)
	}
}

func TestExecute_NonWorkingDayIsClosed(t *testing.T) {
	days := newFakeNonWorkingDayRepo()
	days.days[testTuesday.Format(domain.DateFormat)] = &domain.NonWorkingDay{
		ID:     1,
		Date:   testTuesday,
		Reason: "Holiday",
	}

	slots := newFakeSlotRepo()
	uc := newTestUseCase(slots, &fakePolicyRepo{}, days)

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, "Holiday", resp.Reason)
	assert.Empty(t, resp.Slots)
	// Слоты для нерабочего дня не материализуются
	assert.Empty(t, slots.slots)
}

func TestExecute_MaterializesDefaultSlots(t *testing.T) {
	slots := newFakeSlotRepo()
	policies := &fakePolicyRepo{}
	uc := newTestUseCase(slots, policies, newFakeNonWorkingDayRepo())

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	require.Len(t, resp.Slots, len(domain.DefaultSlotTimes))

	for i, s := range resp.Slots {
		assert.Equal(t, domain.DefaultSlotTimes[i], s.Time.String())
		assert.Equal(t, domain.DefaultMaxBookingsPerSlot, s.MaxBookings)
		assert.Equal(t, 0, s.CurrentBookings)
		assert.True(t, s.IsOpen)
	}

	// Политика создана лениво при первом обращении
	require.NotNil(t, policies.policy)
}

func TestExecute_MaterializationIsIdempotent(t *testing.T) {
	slots := newFakeSlotRepo()
	uc := newTestUseCase(slots, &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	first, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), Request{UserID: 2, Date: testTuesday})
	require.NoError(t, err)

	require.Len(t, second.Slots, len(first.Slots))
	for i := range first.Slots {
		assert.Equal(t, first.Slots[i].ID, second.Slots[i].ID)
	}
}

func TestExecute_UsesConfiguredPolicy(t *testing.T) {
	policies := &fakePolicyRepo{policy: &domain.SlotPolicy{
		ID:                 1,
		SlotTimes:          []types.TimeString{"09:00", "11:00"},
		MaxBookingsPerSlot: 3,
		BookingAdvanceDays: 30,
	}}

	uc := newTestUseCase(newFakeSlotRepo(), policies, newFakeNonWorkingDayRepo())

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.Equal(t, "11:00", resp.Slots[1].Time.String())
	assert.Equal(t, 3, resp.Slots[0].MaxBookings)
}

func TestExecute_FullSlotIsNotOpen(t *testing.T) {
	slots := newFakeSlotRepo()
	uc := newTestUseCase(slots, &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	// Занимаем единственное место первого слота
	key := slotKey(testTuesday, resp.Slots[0].Time)
	slots.slots[key].CurrentBookings = slots.slots[key].MaxBookings

	resp, err = uc.Execute(context.Background(), Request{UserID: 2, Date: testTuesday})
	require.NoError(t, err)

	assert.False(t, resp.Slots[0].IsOpen)
	assert.True(t, resp.Slots[1].IsOpen)
}

func TestExecute_ClosedSlotIsNotOpen(t *testing.T) {
	slots := newFakeSlotRepo()
	uc := newTestUseCase(slots, &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testTuesday})
	require.NoError(t, err)

	key := slotKey(testTuesday, resp.Slots[0].Time)
	slots.slots[key].IsAvailable = false

	resp, err = uc.Execute(context.Background(), Request{UserID: 2, Date: testTuesday})
	require.NoError(t, err)

	assert.False(t, resp.Slots[0].IsOpen)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	_, err := uc.Execute(context.Background(), Request{
		UserID: 1,
		Date:   testMonday.AddDate(0, 0, -3), // пятница на прошлой неделе
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	resp, err := uc.Execute(context.Background(), Request{UserID: 1, Date: testMonday})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	// Горизонт по умолчанию 30 дней; 28 окт 2026 - среда, 44 дня вперед
	_, err := uc.Execute(context.Background(), Request{
		UserID: 1,
		Date:   time.Date(2026, 10, 28, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ZeroDate(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakePolicyRepo{}, newFakeNonWorkingDayRepo())

	_, err := uc.Execute(context.Background(), Request{UserID: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
