package get_slot_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
)

const (
	msgForbidden       = "доступ запрещен"
	msgUnauthenticated = "пользователь не аутентифицирован"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/slot_settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	resp, err := h.service.GetSettings(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("GET /admin/slot_settings - Access denied: user_id=%d", principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/slot_settings - Failed to get settings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
