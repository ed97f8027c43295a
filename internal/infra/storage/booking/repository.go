package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"slot_id",
	"user_id",
	"vehicle_id",
	"service_id",
	"service_type",
	"status",
	"notes",
	"vehicle_model",
	"vehicle_license_plate",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается только внутри транзакции бронирования (см. usecase/create_booking):
// вставка должна быть атомарна с инкрементом занятости слота.
func (r *Repository) Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_bookings").
		Columns(
			"slot_id",
			"user_id",
			"vehicle_id",
			"service_id",
			"service_type",
			"status",
			"notes",
			"vehicle_model",
			"vehicle_license_plate",
		).
		Values(
			b.SlotID,
			b.UserID,
			b.VehicleID,
			b.ServiceID,
			b.ServiceType,
			b.Status,
			b.Notes,
			b.VehicleModel,
			b.VehicleLicensePlate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции блокирует строку (FOR UPDATE) - отмена читает
// бронирование и меняет статус одной сериализуемой единицей.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.SlotBooking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.SlotID,
		&b.UserID,
		&b.VehicleID,
		&b.ServiceID,
		&b.ServiceType,
		&b.Status,
		&b.Notes,
		&b.VehicleModel,
		&b.VehicleLicensePlate,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// GetConfirmedBySlotID получает подтвержденные бронирования слота.
// Внутри транзакции блокирует строки - используется каскадом нерабочего дня.
func (r *Repository) GetConfirmedBySlotID(ctx context.Context, slotID int64) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.StatusConfirmed}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedBySlotID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountConfirmedBySlotID подсчитывает подтвержденные бронирования слота.
// Используется тестами и сверками инварианта занятости.
func (r *Repository) CountConfirmedBySlotID(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slot_bookings").
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedBySlotID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedBySlotID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByUserID получает бронирования пользователя с данными слота,
// отсортированные от новых к старым
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectWithSlot().
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("s.slot_date DESC, s.slot_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookingsWithSlot(rows)
}

// GetWithFilter получает бронирования с данными слота за период.
// Обе границы опциональны; без границ возвращает все бронирования.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectWithSlot()

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.slot_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.
		OrderBy("s.slot_date ASC, s.slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookingsWithSlot(rows)
}

// Cancel переводит бронирование в статус cancelled с указанием причины.
// Сама по себе строка статуса не проверяется - это делает usecase,
// прочитав бронирование под блокировкой.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetServiceID привязывает созданную заявку на обслуживание к бронированию
func (r *Repository) SetServiceID(ctx context.Context, id int64, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("service_id", serviceID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetServiceID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetServiceID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetServiceID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) selectWithSlot() squirrel.SelectBuilder {
	columns := make([]string, 0, len(bookingColumns)+2)
	for _, c := range bookingColumns {
		columns = append(columns, "b."+c)
	}
	columns = append(columns, "s.slot_date", "s.slot_time")

	return psqlbuilder.Select(columns...).
		From("slot_bookings b").
		Join("booking_slots s ON s.id = b.slot_id")
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.SlotBooking, error) {
	bookings := make([]*domain.SlotBooking, 0)

	for rows.Next() {
		var b domain.SlotBooking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.SlotID,
			&b.UserID,
			&b.VehicleID,
			&b.ServiceID,
			&b.ServiceType,
			&b.Status,
			&b.Notes,
			&b.VehicleModel,
			&b.VehicleLicensePlate,
			&b.CancellationReason,
			&b.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func (r *Repository) scanBookingsWithSlot(rows *sql.Rows) ([]*domain.BookingWithSlot, error) {
	bookings := make([]*domain.BookingWithSlot, 0)

	for rows.Next() {
		var b domain.BookingWithSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.SlotID,
			&b.UserID,
			&b.VehicleID,
			&b.ServiceID,
			&b.ServiceType,
			&b.Status,
			&b.Notes,
			&b.VehicleModel,
			&b.VehicleLicensePlate,
			&b.CancellationReason,
			&b.CancelledAt,
			&createdAt,
			&updatedAt,
			&b.SlotDate,
			&b.SlotTime,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookingsWithSlot - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookingsWithSlot - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
