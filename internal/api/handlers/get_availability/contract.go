package get_availability

import (
	"context"

	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
