package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"purpose",
	"capacity",
	"booked_count",
	"created_at",
	"updated_at",
}

// Repository реестр вместимости слотов
// Единственное место, где меняется booked_count
type Repository struct {
	db  DBExecutor
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Create создает слот с booked_count = 0
// Слот с теми же (дата, время начала, услуга) уже существует - ErrDuplicateSlot
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"slot_date",
			"start_time",
			"end_time",
			"purpose",
			"capacity",
		).
		Values(
			domain.DateOnly(slot.Date),
			slot.StartTime,
			slot.EndTime,
			slot.Purpose,
			slot.Capacity,
		).
		Suffix("ON CONFLICT (slot_date, start_time, purpose) DO NOTHING RETURNING id, booked_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.BookedCount,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ListForDate возвращает слоты на дату, опционально только для одной услуги
// Закрытия и окна записи здесь не учитываются
func (r *Repository) ListForDate(ctx context.Context, date time.Time, purpose *domain.Purpose) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"slot_date": domain.DateOnly(date)}).
		OrderBy("start_time ASC", "purpose ASC")

	if purpose != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"purpose": *purpose})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForDate - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDate - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно занимает одно место в слоте
// Проверка и инкремент выполняются одним условным UPDATE, поэтому два параллельных
// вызова на последнее место дают ровно один успех и один ErrSlotFull
func (r *Repository) Reserve(ctx context.Context, slotID int64) (domain.ReservationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where("booked_count < capacity").
		ToSql()

	if err != nil {
		return domain.ReservationToken{}, fmt.Errorf("%w: Reserve - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.ReservationToken{}, fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.ReservationToken{}, fmt.Errorf("%w: Reserve - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, slotID)
		if err != nil {
			return domain.ReservationToken{}, err
		}
		if !exists {
			return domain.ReservationToken{}, ErrSlotNotFound
		}
		return domain.ReservationToken{}, ErrSlotFull
	}

	return domain.NewReservationToken(slotID, r.now()), nil
}

// Release возвращает одно место в слот, booked_count не опускается ниже нуля
// Идемпотентность не гарантируется: вызывать ровно один раз на одну резервацию
func (r *Repository) Release(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("GREATEST(booked_count - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// AvailableCapacity возвращает capacity - booked_count
func (r *Repository) AvailableCapacity(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("capacity - booked_count").
		From("slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AvailableCapacity - build select query: %w", ErrBuildQuery, err)
	}

	var available int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSlotNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AvailableCapacity - scan: %w", ErrScanRow, err)
	}

	return available, nil
}

// UpdateCapacity меняет вместимость, не допуская capacity < booked_count
func (r *Repository) UpdateCapacity(ctx context.Context, slotID int64, capacity int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("capacity", capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.LtOrEq{"booked_count": capacity}).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - build update query: %w", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := r.exists(ctx, slotID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, ErrSlotNotFound
		}
		return nil, ErrCapacityBelowBooked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// Delete удаляет слот, только если на него нет ни одной записи (включая отклонённые)
func (r *Repository) Delete(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": slotID}).
		Where("NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = slots.id)").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, slotID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSlotNotFound
		}
		return ErrSlotInUse
	}

	return nil
}

// exists проверяет наличие слота (используется для различения not found / full)
func (r *Repository) exists(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"id": slotID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: exists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Purpose,
		&slot.Capacity,
		&slot.BookedCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
