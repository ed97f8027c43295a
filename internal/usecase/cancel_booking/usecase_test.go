package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	storageBooking "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
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

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type fakeBookingRepo struct {
	bookings map[int64]*domain.SlotBooking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.SlotBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, storageBooking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := r.bookings[id]
	if !ok {
		return storageBooking.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

type fakeSlotRepo struct {
	occupancy map[int64]int
}

func (r *fakeSlotRepo) DecrementOccupancy(_ context.Context, id int64) error {
	if r.occupancy[id] <= 0 {
		return storageSlot.ErrOccupancyUnderflow
	}
	r.occupancy[id]--
	return nil
}

var testCancelNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func confirmedBooking(id, slotID, userID int64) *domain.SlotBooking {
	return &domain.SlotBooking{
		ID:     id,
		SlotID: slotID,
		UserID: userID,
		Status: domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeSlotRepo) *UseCase {
	return NewUseCase(bookings, slots, fakeTxManager{}, &fakeTimeProvider{now: testCancelNow}, noopLogger{})
}

func TestExecute_OwnerCancels(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{
		1: confirmedBooking(1, 10, 7),
	}}
	slots := &fakeSlotRepo{occupancy: map[int64]int{10: 1}}

	uc := newTestUseCase(bookings, slots)

	resp, err := uc.Execute(context.Background(), Request{
		BookingID: 1,
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
		Reason:    "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, "plans changed", resp.Reason)
	assert.Equal(t, testCancelNow, resp.CancelledAt)

	// Место в слоте освобождено
	assert.Equal(t, 0, slots.occupancy[10])
	assert.Equal(t, domain.StatusCancelled, bookings.bookings[1].Status)
}

func TestExecute_DefaultReason(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{
		1: confirmedBooking(1, 10, 7),
	}}
	slots := &fakeSlotRepo{occupancy: map[int64]int{10: 1}}

	uc := newTestUseCase(bookings, slots)

	resp, err := uc.Execute(context.Background(), Request{
		BookingID: 1,
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
	})
	require.NoError(t, err)

	assert.Equal(t, defaultCancellationReason, resp.Reason)
}

func TestExecute_AdminCancelsForeignBooking(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{
		1: confirmedBooking(1, 10, 7),
	}}
	slots := &fakeSlotRepo{occupancy: map[int64]int{10: 1}}

	uc := newTestUseCase(bookings, slots)

	_, err := uc.Execute(context.Background(), Request{
		BookingID: 1,
		Principal: domain.Principal{UserID: 99, Role: domain.RoleAdmin},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, slots.occupancy[10])
}

func TestExecute_ForeignBookingDenied(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{
		1: confirmedBooking(1, 10, 7),
	}}
	slots := &fakeSlotRepo{occupancy: map[int64]int{10: 1}}

	uc := newTestUseCase(bookings, slots)

	_, err := uc.Execute(context.Background(), Request{
		BookingID: 1,
		Principal: domain.Principal{UserID: 8, Role: domain.RoleCustomer},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Бронирование и счетчик не тронуты
	assert.Equal(t, domain.StatusConfirmed, bookings.bookings[1].Status)
	assert.Equal(t, 1, slots.occupancy[10])
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	cancelled := confirmedBooking(1, 10, 7)
	cancelled.Status = domain.StatusCancelled

	bookings := &fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{1: cancelled}}
	slots := &fakeSlotRepo{occupancy: map[int64]int{10: 0}}

	uc := newTestUseCase(bookings, slots)

	_, err := uc.Execute(context.Background(), Request{
		BookingID: 1,
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
	})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// Повторная отмена не освобождает место второй раз
	assert.Equal(t, 0, slots.occupancy[10])
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		&fakeSlotRepo{occupancy: map[int64]int{}},
	)

	_, err := uc.Execute(context.Background(), Request{
		BookingID: 404,
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: map[int64]*domain.SlotBooking{}},
		&fakeSlotRepo{occupancy: map[int64]int{}},
	)

	_, err := uc.Execute(context.Background(), Request{
		BookingID: 0,
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
