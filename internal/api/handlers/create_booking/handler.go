package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	usecase "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "слот недоступен для записи"
	msgSlotFullyBooked    = "все места в слоте заняты"
	msgVehicleNotFound    = "автомобиль не найден"
	msgVehicleNotOwned    = "автомобиль принадлежит другому пользователю"
	msgUnauthenticated    = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal.UserID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, usecase.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d, user_id=%d", req.SlotID, principal.UserID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, usecase.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%d, user_id=%d", req.SlotID, principal.UserID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, usecase.ErrSlotFullyBooked):
			h.logger.Warn("POST /bookings - Slot fully booked: slot_id=%d, user_id=%d", req.SlotID, principal.UserID)
			handlers.RespondBadRequest(w, msgSlotFullyBooked)

		case errors.Is(err, usecase.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: vehicle_id=%d, user_id=%d", req.VehicleID, principal.UserID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, usecase.ErrVehicleNotOwned):
			h.logger.Warn("POST /bookings - Vehicle not owned: vehicle_id=%d, user_id=%d", req.VehicleID, principal.UserID)
			handlers.RespondForbidden(w, msgVehicleNotOwned)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d", resp.BookingID, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
