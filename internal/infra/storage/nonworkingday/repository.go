package nonworkingday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolationCode = "23505"

var dayColumns = []string{
	"id",
	"nw_date",
	"reason",
	"is_recurring",
	"created_by",
	"created_at",
}

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с нерабочими днями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория нерабочих дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о нерабочем дне.
// Уникальное ограничение по дате - защита от гонки двух админов:
// повторная вставка той же даты возвращает ErrDuplicateDate.
func (r *Repository) Create(ctx context.Context, day *domain.NonWorkingDay) (*domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("non_working_days").
		Columns("nw_date", "reason", "is_recurring", "created_by").
		Values(day.Date, day.Reason, day.IsRecurring, day.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time

	return day, nil
}

// GetByID получает запись о нерабочем дне по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.NonWorkingDay, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByDate получает запись о нерабочем дне по точной дате
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.NonWorkingDay, error) {
	return r.getOne(ctx, squirrel.Eq{"nw_date": date})
}

// List получает все записи о нерабочих днях, отсортированные по дате
func (r *Repository) List(ctx context.Context) ([]*domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("non_working_days").
		OrderBy("nw_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.NonWorkingDay, 0)

	for rows.Next() {
		var day domain.NonWorkingDay
		var createdAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.Date,
			&day.Reason,
			&day.IsRecurring,
			&day.CreatedBy,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time

		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// Delete удаляет запись о нерабочем дне
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("non_working_days").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, pred interface{}) (*domain.NonWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("non_working_days").
		Where(pred).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.NonWorkingDay
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.Date,
		&day.Reason,
		&day.IsRecurring,
		&day.CreatedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan non-working day: %v", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time

	return &day, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
