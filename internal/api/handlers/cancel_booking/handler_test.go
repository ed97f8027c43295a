package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_booking"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp    *usecase.Response
	err     error
	lastReq usecase.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req usecase.Request) (*usecase.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newRouter(uc *fakeUseCase) *mux.Router {
	h := NewHandler(uc, noopLogger{})
	r := mux.NewRouter()
	r.Use(middleware.Auth(noopLogger{}))
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)
	return r
}

func doRequest(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "7")
	req.Header.Set(middleware.HeaderUserRole, "customer")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &usecase.Response{
		BookingID:   1,
		Status:      domain.StatusCancelled,
		Reason:      "plans changed",
		CancelledAt: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(t, newRouter(uc), "/api/v1/bookings/1/cancel", `{"cancellationReason":"plans changed"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "plans changed", resp.CancellationReason)

	// Principal из заголовков дошел до usecase
	assert.Equal(t, int64(7), uc.lastReq.Principal.UserID)
	assert.Equal(t, "plans changed", uc.lastReq.Reason)
}

func TestHandle_EmptyBodyAllowed(t *testing.T) {
	uc := &fakeUseCase{resp: &usecase.Response{
		BookingID: 1,
		Status:    domain.StatusCancelled,
		Reason:    "Cancelled by user",
	}}

	rec := doRequest(t, newRouter(uc), "/api/v1/bookings/1/cancel", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.lastReq.Reason)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	rec := doRequest(t, newRouter(&fakeUseCase{}), "/api/v1/bookings/abc/cancel", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: usecase.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", err: usecase.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already cancelled", err: usecase.ErrAlreadyCancelled, wantStatus: http.StatusConflict},
		{name: "invalid input", err: usecase.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: usecase.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&fakeUseCase{err: tt.err}), "/api/v1/bookings/1/cancel", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	router := newRouter(&fakeUseCase{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/cancel", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
