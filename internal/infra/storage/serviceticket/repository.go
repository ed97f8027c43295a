package serviceticket

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий заявок на обслуживание.
// Подсистема бронирования только создает заявки - дальнейший жизненный цикл
// принадлежит основному приложению.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку на обслуживание.
// Вызывается внутри транзакции бронирования - вставка атомарна
// с созданием бронирования и инкрементом занятости слота.
func (r *Repository) Create(ctx context.Context, t *domain.ServiceTicket) (*domain.ServiceTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_tickets").
		Columns(
			"service_type",
			"scheduled_at",
			"status",
			"notes",
			"vehicle_id",
			"user_id",
		).
		Values(
			t.ServiceType,
			t.ScheduledAt,
			t.Status,
			t.Notes,
			t.VehicleID,
			t.UserID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByID получает заявку на обслуживание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceTicket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_type",
		"scheduled_at",
		"status",
		"notes",
		"vehicle_id",
		"user_id",
		"created_at",
	).
		From("service_tickets").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.ServiceTicket
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.ServiceType,
		&t.ScheduledAt,
		&t.Status,
		&t.Notes,
		&t.VehicleID,
		&t.UserID,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan ticket: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time

	return &t, nil
}
