package unmark_non_working_day

import (
	"context"

	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/unmark_non_working_day"
)

type UnmarkNonWorkingDayUseCase interface {
	Execute(ctx context.Context, req usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
