package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Warn(string, ...interface{}) {}

func authTestHandler(t *testing.T, wantPrincipal domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantPrincipal, principal)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidHeaders(t *testing.T) {
	want := domain.Principal{UserID: 7, Role: domain.RoleCustomer}
	handler := Auth(noopLogger{})(authTestHandler(t, want))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/my_bookings", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, "customer")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_AdminRole(t *testing.T) {
	want := domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	handler := Auth(noopLogger{})(authTestHandler(t, want))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	req.Header.Set(HeaderUserID, "1")
	req.Header.Set(HeaderUserRole, "admin")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no headers", headers: map[string]string{}},
		{name: "missing role", headers: map[string]string{HeaderUserID: "7"}},
		{name: "missing user id", headers: map[string]string{HeaderUserRole: "customer"}},
		{name: "non-numeric user id", headers: map[string]string{HeaderUserID: "abc", HeaderUserRole: "customer"}},
		{name: "negative user id", headers: map[string]string{HeaderUserID: "-1", HeaderUserRole: "customer"}},
		{name: "unknown role", headers: map[string]string{HeaderUserID: "7", HeaderUserRole: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(noopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/my_bookings", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}
