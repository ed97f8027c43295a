package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"slot_time",
	"max_bookings",
	"current_bookings",
	"is_available",
	"created_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfAbsent создает слот, если его еще нет.
// Вставка условная (ON CONFLICT DO NOTHING по натуральному ключу дата+время),
// поэтому конкурентная материализация одной даты не порождает дублей
// и не трогает состояние уже существующего слота.
func (r *Repository) CreateIfAbsent(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_slots").
		Columns(
			"slot_date",
			"slot_time",
			"max_bookings",
			"current_bookings",
			"is_available",
		).
		Values(
			s.Date,
			s.Time,
			s.MaxBookings,
			s.CurrentBookings,
			s.IsAvailable,
		).
		Suffix("ON CONFLICT (slot_date, slot_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает слот по ID с блокировкой строки (FOR UPDATE).
// Используется в транзакции бронирования: проверка емкости и инкремент
// занятости должны быть одной сериализуемой единицей.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, dbmetrics.IsInTransaction(ctx))
}

// GetByDateAndTime получает слот по натуральному ключу (дата, время)
func (r *Repository) GetByDateAndTime(ctx context.Context, date time.Time, t types.TimeString) (*domain.Slot, error) {
	return r.getOne(ctx, squirrel.Eq{"slot_date": date, "slot_time": t}, false)
}

// GetByDate получает все слоты на дату, отсортированные по времени
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("booking_slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("slot_time ASC")

	// Внутри транзакции (каскад нерабочего дня) блокируем строки слотов
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// IncrementOccupancy увеличивает счетчик занятости слота на 1.
// Условие current_bookings < max_bookings в самом UPDATE служит
// compare-and-swap защитой: при заполненном слоте запрос не затронет
// ни одной строки и вернется ErrSlotFull.
func (r *Repository) IncrementOccupancy(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_bookings < max_bookings")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementOccupancy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementOccupancy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotFull
	}

	return nil
}

// DecrementOccupancy уменьшает счетчик занятости слота на 1.
// Выполняется вместе с отменой бронирования в одной транзакции,
// чтобы счетчик не разошелся с количеством подтвержденных бронирований.
func (r *Repository) DecrementOccupancy(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("current_bookings", squirrel.Expr("current_bookings - 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_bookings > 0")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementOccupancy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementOccupancy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOccupancyUnderflow
	}

	return nil
}

// SetAvailabilityByDate выставляет флаг доступности всем слотам даты.
// Емкость и занятость не трогаются - занятость остается точным счетчиком
// подтвержденных бронирований для аудита.
func (r *Repository) SetAvailabilityByDate(ctx context.Context, date time.Time, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("is_available", available).
		Where(squirrel.Eq{"slot_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailabilityByDate - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetAvailabilityByDate - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, pred interface{}, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("booking_slots").
		Where(pred)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Date,
		&s.Time,
		&s.MaxBookings,
		&s.CurrentBookings,
		&s.IsAvailable,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan slot: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.Time,
			&s.MaxBookings,
			&s.CurrentBookings,
			&s.IsAvailable,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
