package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byUser     map[int64][]*domain.BookingWithSlot
	all        []*domain.BookingWithSlot
	lastFilter domain.BookingsFilter
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.BookingWithSlot, error) {
	return r.byUser[userID], nil
}

func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithSlot, error) {
	r.lastFilter = filter
	return r.all, nil
}

func testBooking(id, userID int64) *domain.BookingWithSlot {
	return &domain.BookingWithSlot{
		SlotBooking: domain.SlotBooking{
			ID:          id,
			SlotID:      10,
			UserID:      userID,
			VehicleID:   42,
			ServiceType: "Oil Change",
			Status:      domain.StatusConfirmed,
		},
		SlotDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SlotTime: "09:00",
	}
}

func TestGetUserBookings(t *testing.T) {
	repo := &fakeBookingRepo{byUser: map[int64][]*domain.BookingWithSlot{
		7: {testBooking(1, 7), testBooking(2, 7)},
	}}

	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "2026-09-15", resp.Bookings[0].SlotDate)
	assert.Equal(t, "09:00", resp.Bookings[0].SlotTime)
	assert.Equal(t, "confirmed", resp.Bookings[0].Status)
}

func TestGetUserBookings_InvalidUser(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, noopLogger{})

	_, err := svc.GetUserBookings(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAdminBookings(t *testing.T) {
	repo := &fakeBookingRepo{all: []*domain.BookingWithSlot{testBooking(1, 7), testBooking(2, 8)}}
	svc := NewService(repo, noopLogger{})

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{
		Principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin},
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, repo.lastFilter.StartDate)
	assert.Equal(t, start, *repo.lastFilter.StartDate)
}

func TestGetAdminBookings_NonAdminDenied(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, noopLogger{})

	_, err := svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{
		Principal: domain.Principal{UserID: 7, Role: domain.RoleCustomer},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAdminBookings_InvalidPeriod(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, noopLogger{})

	_, err := svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{
		Principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin},
		StartDate: ptr.Ptr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr.Ptr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromDomainBooking_CancelledFields(t *testing.T) {
	b := testBooking(1, 7)
	b.Status = domain.StatusCancelled
	b.CancellationReason = ptr.Ptr("plans changed")
	cancelledAt := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	b.CancelledAt = &cancelledAt

	resp := models.FromDomainBooking(b)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2026-09-14T12:00:00Z", *resp.CancelledAt)
}
