package mark_non_working_day

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageNWD "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
	storageSlot "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDayRepo struct {
	days   map[string]*domain.NonWorkingDay
	nextID int64
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[string]*domain.NonWorkingDay), nextID: 1}
}

func (r *fakeDayRepo) Create(_ context.Context, day *domain.NonWorkingDay) (*domain.NonWorkingDay, error) {
	key := day.Date.Format(domain.DateFormat)
	if _, ok := r.days[key]; ok {
		return nil, storageNWD.ErrDuplicateDate
	}
	created := *day
	created.ID = r.nextID
	r.nextID++
	r.days[key] = &created
	return &created, nil
}

func (r *fakeDayRepo) GetByDate(_ context.Context, date time.Time) (*domain.NonWorkingDay, error) {
	d, ok := r.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, storageNWD.ErrDayNotFound
	}
	return d, nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot
}

func (r *fakeSlotRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) SetAvailabilityByDate(_ context.Context, date time.Time, available bool) error {
	for _, s := range r.slots {
		if s.Date.Equal(date) {
			s.IsAvailable = available
		}
	}
	return nil
}

func (r *fakeSlotRepo) DecrementOccupancy(_ context.Context, id int64) error {
	s, ok := r.slots[id]
	if !ok {
		return storageSlot.ErrSlotNotFound
	}
	if s.CurrentBookings <= 0 {
		return storageSlot.ErrOccupancyUnderflow
	}
	s.CurrentBookings--
	return nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.SlotBooking
}

func (r *fakeBookingRepo) GetConfirmedBySlotID(_ context.Context, slotID int64) ([]*domain.SlotBooking, error) {
	var out []*domain.SlotBooking
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status == domain.StatusConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b := r.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

var (
	testDate  = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	testAdmin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
)

func TestExecute_CascadeCancelsBookings(t *testing.T) {
	slots := &fakeSlotRepo{slots: map[int64]*domain.Slot{
		10: {ID: 10, Date: testDate, Time: "09:00", MaxBookings: 2, CurrentBookings: 2, IsAvailable: true},
		11: {ID: 11, Date: testDate, Time: "11:00", MaxBookings: 2, CurrentBookings: 0, IsAvailable: true},
	}}
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{
		1: {ID: 1, SlotID: 10, UserID: 7, Status: domain.StatusConfirmed},
		2: {ID: 2, SlotID: 10, UserID: 8, Status: domain.StatusConfirmed},
		3: {ID: 3, SlotID: 10, UserID: 9, Status: domain.StatusCancelled},
	}}
	days := newFakeDayRepo()

	uc := NewUseCase(days, slots, bookings, fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), Request{
		Principal: testAdmin,
		Date:      testDate,
		Reason:    "Maintenance",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CancelledBookings)
	assert.Equal(t, 2, resp.ClosedSlots)
	assert.Equal(t, "Maintenance", resp.Day.Reason)

	// Все слоты даты закрыты
	assert.False(t, slots.slots[10].IsAvailable)
	assert.False(t, slots.slots[11].IsAvailable)

	// Подтвержденные бронирования отменены, счетчик обнулен
	assert.Equal(t, domain.StatusCancelled, bookings.bookings[1].Status)
	assert.Equal(t, domain.StatusCancelled, bookings.bookings[2].Status)
	assert.Equal(t, 0, slots.slots[10].CurrentBookings)

	// Причина отмены указывает на нерабочий день
	require.NotNil(t, bookings.bookings[1].CancellationReason)
	assert.Equal(t, "Non-working day: Maintenance", *bookings.bookings[1].CancellationReason)
}

func TestExecute_NoMaterializedSlots(t *testing.T) {
	uc := NewUseCase(
		newFakeDayRepo(),
		&fakeSlotRepo{slots: map[int64]*domain.Slot{}},
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		fakeTxManager{},
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{Principal: testAdmin, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.CancelledBookings)
	assert.Equal(t, 0, resp.ClosedSlots)
	assert.Equal(t, domain.DefaultNonWorkingReason, resp.Day.Reason)
}

func TestExecute_DateAlreadyMarked(t *testing.T) {
	days := newFakeDayRepo()
	days.days[testDate.Format(domain.DateFormat)] = &domain.NonWorkingDay{ID: 1, Date: testDate}

	uc := NewUseCase(
		days,
		&fakeSlotRepo{slots: map[int64]*domain.Slot{}},
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		fakeTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{Principal: testAdmin, Date: testDate})
	assert.ErrorIs(t, err, ErrDateAlreadyMarked)
}

func TestExecute_NonAdminDenied(t *testing.T) {
	uc := NewUseCase(
		newFakeDayRepo(),
		&fakeSlotRepo{slots: map[int64]*domain.Slot{}},
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		fakeTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
		Date:      testDate,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(
		newFakeDayRepo(),
		&fakeSlotRepo{slots: map[int64]*domain.Slot{}},
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		fakeTxManager{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), Request{Principal: testAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
