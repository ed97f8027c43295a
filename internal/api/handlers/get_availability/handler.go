package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast      = "дата в прошлом"
	msgDateTooFar      = "дата за пределами горизонта бронирования"
	msgUnauthenticated = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/{date} - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), usecase.Request{
		UserID: principal.UserID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("GET /slots/{date} - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, usecase.ErrInvalidDate):
			h.logger.Warn("GET /slots/{date} - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, usecase.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots/{date} - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /slots/{date} - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
