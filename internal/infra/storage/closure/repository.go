package closure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/psqlbuilder"
)

// Repository репозиторий закрытых дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытых дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert закрывает дату; повторное закрытие заменяет замечание
func (r *Repository) Upsert(ctx context.Context, closure *domain.CalendarClosure) (*domain.CalendarClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_closures").
		Columns("closure_date", "remarks").
		Values(domain.DateOnly(closure.Date), closure.Remarks).
		Suffix("ON CONFLICT (closure_date) DO UPDATE SET remarks = EXCLUDED.remarks, updated_at = NOW() RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	closure.Date = domain.DateOnly(closure.Date)
	closure.CreatedAt = createdAt.Time
	closure.UpdatedAt = updatedAt.Time

	return closure, nil
}

// Delete открывает дату. Возвращает false, если дата не была закрыта
func (r *Repository) Delete(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_closures").
		Where(squirrel.Eq{"closure_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetByDate получает закрытие на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.CalendarClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("closure_date", "remarks", "created_at", "updated_at").
		From("calendar_closures").
		Where(squirrel.Eq{"closure_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %w", ErrBuildQuery, err)
	}

	closure, err := scanClosure(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClosureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan closure: %w", ErrScanRow, err)
	}

	return closure, nil
}

// IsClosed проверяет, закрыта ли дата
func (r *Repository) IsClosed(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("calendar_closures").
		Where(squirrel.Eq{"closure_date": domain.DateOnly(date)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsClosed - build select query: %w", ErrBuildQuery, err)
	}

	var closed bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&closed); err != nil {
		return false, fmt.Errorf("%w: IsClosed - scan: %w", ErrScanRow, err)
	}

	return closed, nil
}

// List возвращает закрытия в диапазоне дат (границы опциональны, включительно)
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]*domain.CalendarClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("closure_date", "remarks", "created_at", "updated_at").
		From("calendar_closures").
		OrderBy("closure_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"closure_date": domain.DateOnly(*from)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"closure_date": domain.DateOnly(*to)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.CalendarClosure, 0)
	for rows.Next() {
		closure, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		closures = append(closures, closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return closures, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClosure(row rowScanner) (*domain.CalendarClosure, error) {
	var closure domain.CalendarClosure
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&closure.Date, &closure.Remarks, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	closure.CreatedAt = createdAt.Time
	closure.UpdatedAt = updatedAt.Time

	return &closure, nil
}
