package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePolicyRepo struct {
	policy *domain.SlotPolicy
}

func (r *fakePolicyRepo) Get(_ context.Context) (*domain.SlotPolicy, error) {
	if r.policy == nil {
		return nil, policyRepo.ErrPolicyNotFound
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

func (r *fakePolicyRepo) Update(_ context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error) {
	updated := *p
	updated.UpdatedAt = time.Now()
	r.policy = &updated
	copied := updated
	return &copied, nil
}

type fakeDayRepo struct {
	list []*domain.NonWorkingDay
}

func (r *fakeDayRepo) List(_ context.Context) ([]*domain.NonWorkingDay, error) {
	return r.list, nil
}

var (
	adminPrincipal    = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	customerPrincipal = domain.Principal{UserID: 7, Role: domain.RoleCustomer}
)

func newTestService(policies *fakePolicyRepo, days *fakeDayRepo) *Service {
	return NewService(policies, days, fakeTxManager{}, noopLogger{})
}

func TestGetSettings_InitsDefaultLazily(t *testing.T) {
	policies := &fakePolicyRepo{}
	svc := newTestService(policies, &fakeDayRepo{})

	resp, err := svc.GetSettings(context.Background(), adminPrincipal)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSlotTimes, resp.SlotTimes)
	assert.Equal(t, domain.DefaultMaxBookingsPerSlot, resp.MaxBookingsPerSlot)
	assert.Equal(t, domain.DefaultBookingAdvanceDays, resp.BookingAdvanceDays)
	require.NotNil(t, policies.policy)
}

func TestGetSettings_NonAdminDenied(t *testing.T) {
	svc := newTestService(&fakePolicyRepo{}, &fakeDayRepo{})

	_, err := svc.GetSettings(context.Background(), customerPrincipal)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	policies := &fakePolicyRepo{}
	svc := newTestService(policies, &fakeDayRepo{})

	// Меняем только емкость - времена и горизонт остаются дефолтными
	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		Principal:          adminPrincipal,
		MaxBookingsPerSlot: ptr.Ptr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.MaxBookingsPerSlot)
	assert.Equal(t, domain.DefaultSlotTimes, resp.SlotTimes)
	assert.Equal(t, domain.DefaultBookingAdvanceDays, resp.BookingAdvanceDays)
}

func TestUpdateSettings_ReplacesSlotTimes(t *testing.T) {
	policies := &fakePolicyRepo{}
	svc := newTestService(policies, &fakeDayRepo{})

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		Principal: adminPrincipal,
		SlotTimes: []string{"08:00", "10:30", "14:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "10:30", "14:00"}, resp.SlotTimes)
	require.Len(t, policies.policy.SlotTimes, 3)
	assert.Equal(t, types.TimeString("08:00"), policies.policy.SlotTimes[0])
}

func TestUpdateSettings_NonAdminDenied(t *testing.T) {
	svc := newTestService(&fakePolicyRepo{}, &fakeDayRepo{})

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		Principal:          customerPrincipal,
		MaxBookingsPerSlot: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := newTestService(&fakePolicyRepo{}, &fakeDayRepo{})

	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "invalid time format", req: models.UpdateSettingsRequest{SlotTimes: []string{"9am"}}},
		{name: "empty times list", req: models.UpdateSettingsRequest{SlotTimes: []string{}}},
		{name: "duplicate times", req: models.UpdateSettingsRequest{SlotTimes: []string{"09:00", "09:00"}}},
		{name: "unsorted times", req: models.UpdateSettingsRequest{SlotTimes: []string{"11:00", "09:00"}}},
		{name: "capacity too small", req: models.UpdateSettingsRequest{MaxBookingsPerSlot: ptr.Ptr(0)}},
		{name: "capacity too large", req: models.UpdateSettingsRequest{MaxBookingsPerSlot: ptr.Ptr(domain.MaxBookingsPerSlot + 1)}},
		{name: "horizon too small", req: models.UpdateSettingsRequest{BookingAdvanceDays: ptr.Ptr(0)}},
		{name: "horizon too large", req: models.UpdateSettingsRequest{BookingAdvanceDays: ptr.Ptr(domain.MaxAdvanceDays + 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Principal = adminPrincipal

			_, err := svc.UpdateSettings(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListNonWorkingDays(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	days := &fakeDayRepo{list: []*domain.NonWorkingDay{
		{ID: 1, Date: date, Reason: "Holiday", CreatedBy: 1},
	}}

	svc := newTestService(&fakePolicyRepo{}, days)

	resp, err := svc.ListNonWorkingDays(context.Background(), adminPrincipal)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "2026-09-15", resp.Days[0].Date)
}

func TestListNonWorkingDays_NonAdminDenied(t *testing.T) {
	svc := newTestService(&fakePolicyRepo{}, &fakeDayRepo{})

	_, err := svc.ListNonWorkingDays(context.Background(), customerPrincipal)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
