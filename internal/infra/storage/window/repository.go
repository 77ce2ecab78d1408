package window

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

var windowColumns = []string{
	"id",
	"name",
	"start_date",
	"end_date",
	"purpose",
	"is_active",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон записи
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно записи
func (r *Repository) Create(ctx context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_windows").
		Columns(
			"name",
			"start_date",
			"end_date",
			"purpose",
			"is_active",
			"description",
		).
		Values(
			window.Name,
			domain.DateOnly(window.StartDate),
			domain.DateOnly(window.EndDate),
			window.Purpose,
			window.IsActive,
			window.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByID получает окно записи по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SchedulingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("scheduling_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %w", ErrScanRow, err)
	}

	return window, nil
}

// Update полностью заменяет поля окна записи
func (r *Repository) Update(ctx context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduling_windows").
		Set("name", window.Name).
		Set("start_date", domain.DateOnly(window.StartDate)).
		Set("end_date", domain.DateOnly(window.EndDate)).
		Set("purpose", window.Purpose).
		Set("is_active", window.IsActive).
		Set("description", window.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": window.ID}).
		Suffix("RETURNING " + strings.Join(windowColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan window: %w", ErrScanRow, err)
	}

	return updated, nil
}

// Delete удаляет окно записи
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("scheduling_windows").
		Where(squirrel.Eq{"id": id}).
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
		return ErrWindowNotFound
	}

	return nil
}

// List возвращает окна записи, опционально только активные
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.SchedulingWindow, error) {
	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("scheduling_windows").
		OrderBy("start_date ASC", "id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	return r.list(ctx, "List", selectBuilder)
}

// ListActiveForDate возвращает активные окна, содержащие дату (для любой услуги)
func (r *Repository) ListActiveForDate(ctx context.Context, date time.Time) ([]*domain.SchedulingWindow, error) {
	d := domain.DateOnly(date)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("scheduling_windows").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"start_date": d}).
		Where(squirrel.GtOrEq{"end_date": d}).
		OrderBy("id ASC")

	return r.list(ctx, "ListActiveForDate", selectBuilder)
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.SchedulingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.SchedulingWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return windows, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.SchedulingWindow, error) {
	var window domain.SchedulingWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.Name,
		&window.StartDate,
		&window.EndDate,
		&window.Purpose,
		&window.IsActive,
		&window.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}
