package get_admin_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidPeriod   = "некорректный период, ожидается YYYY-MM-DD"
	msgForbidden       = "доступ запрещен"
	msgUnauthenticated = "пользователь не аутентифицирован"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	req := &models.GetAdminBookingsRequest{Principal: principal}

	query := r.URL.Query()

	if raw := query.Get("start"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid start %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("end"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid end %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		req.EndDate = &endDate
	}

	resp, err := h.service.GetAdminBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/bookings - Access denied: user_id=%d", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid input: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/bookings - Failed to fetch bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
