package mark_non_working_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/mark_non_working_day"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAlreadyMarked      = "дата уже отмечена как нерабочая"
	msgForbidden          = "доступ запрещен"
	msgUnauthenticated    = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase MarkNonWorkingDayUseCase
	logger  Logger
}

func NewHandler(useCase MarkNonWorkingDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/non_working_days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req MarkNonWorkingDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/non_working_days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /admin/non_working_days - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /admin/non_working_days - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, usecase.ErrAccessDenied):
			h.logger.Warn("POST /admin/non_working_days - Access denied: user_id=%d", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, usecase.ErrDateAlreadyMarked):
			h.logger.Warn("POST /admin/non_working_days - Date already marked: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyMarked)

		default:
			h.logger.Error("POST /admin/non_working_days - Failed to mark date: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/non_working_days - Date marked: date=%s, cancelled_bookings=%d, admin_id=%d",
		req.Date, resp.CancelledBookings, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
