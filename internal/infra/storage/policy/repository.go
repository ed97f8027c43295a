package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// policyRowID фиксированный ID единственной строки политики
const policyRowID = 1

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий политики слотов (singleton строка)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает политику слотов
func (r *Repository) Get(ctx context.Context) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_times",
		"max_bookings_per_slot",
		"booking_advance_days",
		"updated_at",
	).
		From("slot_policy").
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.SlotPolicy
	var rawTimes string
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&rawTimes,
		&p.MaxBookingsPerSlot,
		&p.BookingAdvanceDays,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	p.SlotTimes, err = decodeSlotTimes(rawTimes)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// InitDefault сохраняет политику по умолчанию, если строки еще нет.
// Вставка условная (ON CONFLICT DO NOTHING): конкурентная инициализация
// безопасна, выигрывает первая запись.
func (r *Repository) InitDefault(ctx context.Context) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaults := domain.DefaultSlotPolicy()

	rawTimes, err := encodeSlotTimes(defaults.SlotTimes)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("slot_policy").
		Columns("id", "slot_times", "max_bookings_per_slot", "booking_advance_days").
		Values(policyRowID, rawTimes, defaults.MaxBookingsPerSlot, defaults.BookingAdvanceDays).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: InitDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: InitDefault - execute insert: %v", ErrExecQuery, err)
	}

	// Перечитываем: при гонке могла победить чужая вставка
	return r.Get(ctx)
}

// Update полностью перезаписывает поля политики переданными значениями.
// Частичное слияние выполняет сервис настроек до вызова Update.
func (r *Repository) Update(ctx context.Context, p *domain.SlotPolicy) (*domain.SlotPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rawTimes, err := encodeSlotTimes(p.SlotTimes)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("slot_policy").
		Set("slot_times", rawTimes).
		Set("max_bookings_per_slot", p.MaxBookingsPerSlot).
		Set("booking_advance_days", p.BookingAdvanceDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policyRowID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	p.ID = policyRowID
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

func encodeSlotTimes(slotTimes []types.TimeString) (string, error) {
	raw, err := json.Marshal(slotTimes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeSlotTimes, err)
	}
	return string(raw), nil
}

func decodeSlotTimes(raw string) ([]types.TimeString, error) {
	var slotTimes []types.TimeString
	if err := json.Unmarshal([]byte(raw), &slotTimes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeSlotTimes, err)
	}
	return slotTimes, nil
}
