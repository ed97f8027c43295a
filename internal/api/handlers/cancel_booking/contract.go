package cancel_booking

import (
	"context"

	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
