package window

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepository(t)
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO scheduling_windows (name,start_date,end_date,purpose,is_active,description)")).
		WithArgs("First semester", start, end, "ALL", true, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	window, err := repo.Create(context.Background(), &domain.SchedulingWindow{
		Name:      "First semester",
		StartDate: start,
		EndDate:   end,
		Purpose:   domain.PurposeAll,
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), window.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActiveForDate(t *testing.T) {
	repo, mock := newRepository(t)
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduling_windows WHERE is_active = $1 AND start_date <= $2 AND end_date >= $3 ORDER BY id ASC")).
		WithArgs(true, date, date).
		WillReturnRows(sqlmock.NewRows(windowColumns).
			AddRow(int64(1), "Renewals", start, end, "RENEWAL", true, nil, start, start))

	windows, err := repo.ListActiveForDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].Allows(date, domain.PurposeRenewal))
	assert.False(t, windows[0].Allows(date, domain.PurposeNewID))
	assert.Nil(t, windows[0].Description)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE scheduling_windows SET name = $1")).
		WillReturnRows(sqlmock.NewRows(windowColumns))

	_, err := repo.Update(context.Background(), &domain.SchedulingWindow{
		ID:        42,
		Name:      "Gone",
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		Purpose:   domain.PurposeAll,
	})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM scheduling_windows WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), ErrWindowNotFound)
}

func TestRepository_List_ActiveOnly(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduling_windows WHERE is_active = $1 ORDER BY start_date ASC, id ASC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(windowColumns))

	windows, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, windows)
}
