package book_appointment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/fakes"
	appointmentRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-IDCardBooking/pkg/metrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/txmanager"
)

var (
	selectSlotSQL        = regexp.QuoteMeta("FROM slots WHERE id = $1")
	reserveSlotSQL       = regexp.QuoteMeta("UPDATE slots SET booked_count = booked_count + 1, updated_at = NOW() WHERE id = $1 AND booked_count < capacity")
	slotExistsSQL        = regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM slots WHERE id = $1 )")
	insertAppointmentSQL = regexp.QuoteMeta("INSERT INTO appointments")
)

// openOffice календарь без закрытий и окно записи на любую дату
type openOffice struct{}

func (openOffice) IsClosed(context.Context, time.Time) (bool, error) { return false, nil }

func (openOffice) IsBookable(context.Context, time.Time, domain.Purpose) (bool, error) {
	return true, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

// newPostgresUseCase собирает use case на настоящих репозиториях и менеджере транзакций поверх sqlmock
func newPostgresUseCase(t *testing.T) (*UseCase, sqlmock.Sqlmock, *metrics.Metrics) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	uc := NewUseCase(
		slotRepo.NewRepository(db),
		appointmentRepo.NewRepository(db),
		openOffice{},
		openOffice{},
		&fakes.Notifier{},
		m,
		txmanager.NewTransactionManager(db),
		&fakes.Logger{},
	).WithTimeProvider(&fakes.Clock{T: now})

	return uc, mock, m
}

func expectSlotSelect(mock sqlmock.Sqlmock, slotID int64, capacity, booked int) {
	mock.ExpectQuery(selectSlotSQL).
		WithArgs(slotID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slot_date", "start_time", "end_time", "purpose", "capacity", "booked_count", "created_at", "updated_at",
		}).AddRow(slotID, slotDate, "09:00:00", "09:30:00", "NEW_ID", capacity, booked, now, now))
}

func TestUseCase_Execute_RetriesSerializationFailure(t *testing.T) {
	uc, mock, m := newPostgresUseCase(t)

	// Первая попытка проигрывает конкурентной записи на ту же строку слота
	mock.ExpectBegin()
	expectSlotSelect(mock, 7, 2, 0)
	mock.ExpectExec(reserveSlotSQL).WithArgs(int64(7)).WillReturnError(serializationFailure())
	mock.ExpectRollback()

	// Повтор видит свежие данные и занимает оставшееся место
	mock.ExpectBegin()
	expectSlotSelect(mock, 7, 2, 1)
	mock.ExpectExec(reserveSlotSQL).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertAppointmentSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(31), now, now))
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), request(7, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(31), resp.ID)
	assert.Equal(t, domain.StatusPendingApproval, resp.Status)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("success")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUseCase_Execute_SerializationFailureThenSlotFull(t *testing.T) {
	uc, mock, m := newPostgresUseCase(t)

	mock.ExpectBegin()
	expectSlotSelect(mock, 7, 1, 0)
	mock.ExpectExec(reserveSlotSQL).WithArgs(int64(7)).WillReturnError(serializationFailure())
	mock.ExpectRollback()

	// Конкурент забрал последнее место: повтор получает SlotFull, а не внутреннюю ошибку
	mock.ExpectBegin()
	expectSlotSelect(mock, 7, 1, 1)
	mock.ExpectExec(reserveSlotSQL).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(slotExistsSQL).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), request(7, 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotFull)
	assert.Equal(t, domain.KindSlotFull, domain.KindOf(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationsTotal.WithLabelValues(string(domain.KindSlotFull))))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUseCase_Execute_SerializationRetriesExhausted(t *testing.T) {
	uc, mock, _ := newPostgresUseCase(t)

	for attempt := 0; attempt <= txmanager.DefaultSerializableRetries; attempt++ {
		mock.ExpectBegin()
		expectSlotSelect(mock, 7, 2, 0)
		mock.ExpectExec(reserveSlotSQL).WithArgs(int64(7)).WillReturnError(serializationFailure())
		mock.ExpectRollback()
	}

	_, err := uc.Execute(context.Background(), request(7, 100))
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	// Причина из драйвера сохраняется в цепочке ошибок
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
