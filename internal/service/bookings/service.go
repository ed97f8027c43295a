package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис для чтения истории бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetUserBookings получает историю бронирований пользователя,
// включая отмененные, от новых к старым
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(list), userID)
	return models.FromDomainBookingList(list), nil
}

// GetAdminBookings получает все бронирования с опциональным фильтром по периоду.
// Доступно только администраторам.
func (s *Service) GetAdminBookings(ctx context.Context, req *models.GetAdminBookingsRequest) (*models.BookingListResponse, error) {
	if !req.Principal.IsAdmin() {
		s.logger.Warn("GetAdminBookings: access denied for user=%d", req.Principal.UserID)
		return nil, fmt.Errorf("%w: user %d is not an admin", ErrAccessDenied, req.Principal.UserID)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetAdminBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminBookings: fetched %d bookings for admin=%d", len(list), req.Principal.UserID)
	return models.FromDomainBookingList(list), nil
}
