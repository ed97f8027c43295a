package unmark_non_working_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/unmark_non_working_day"
)

const (
	msgInvalidDayID    = "некорректный ID нерабочего дня"
	msgNotFound        = "нерабочий день не найден"
	msgForbidden       = "доступ запрещен"
	msgUnauthenticated = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase UnmarkNonWorkingDayUseCase
	logger  Logger
}

func NewHandler(useCase UnmarkNonWorkingDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/non_working_days?id={dayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	dayIDStr := r.URL.Query().Get("id")

	dayID, err := strconv.ParseInt(dayIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/non_working_days/{id} - Invalid day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), usecase.Request{
		Principal: principal,
		DayID:     dayID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/non_working_days/{id} - Invalid input: day_id=%d, error=%v", dayID, err)
			handlers.RespondBadRequest(w, msgInvalidDayID)

		case errors.Is(err, usecase.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/non_working_days/{id} - Access denied: user_id=%d", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrDayNotFound):
			h.logger.Warn("DELETE /admin/non_working_days/{id} - Day not found: day_id=%d", dayID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/non_working_days/{id} - Failed to unmark day: day_id=%d, error=%v", dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/non_working_days/{id} - Date unmarked: date=%s, admin_id=%d",
		resp.Date.Format(domain.DateFormat), principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"date": resp.Date.Format(domain.DateFormat),
	})
}
