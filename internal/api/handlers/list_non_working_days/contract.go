package list_non_working_days

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

type SettingsService interface {
	ListNonWorkingDays(ctx context.Context, principal domain.Principal) (*models.NonWorkingDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
