package book_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/fakes"
	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/closures"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/windows"
	"github.com/m04kA/SMC-IDCardBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-IDCardBooking/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-IDCardBooking/pkg/metrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/ptr"
	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

var (
	slotDate = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	now      = time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	staff    = domain.Requester{UserID: 1, Role: domain.RoleStaff}
)

type testEnv struct {
	store    *fakes.Store
	notifier *fakes.Notifier
	metrics  *metrics.Metrics
	logger   *fakes.Logger
	book     *UseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := fakes.NewStore()
	logger := &fakes.Logger{}
	notifier := &fakes.Notifier{}
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	book := NewUseCase(
		store.Slots(),
		store.Appointments(),
		closures.NewService(store.Closures(), logger),
		windows.NewService(store.Windows(), logger),
		notifier,
		m,
		fakes.NewTxManager(store),
		logger,
	).WithTimeProvider(&fakes.Clock{T: now})

	return &testEnv{store: store, notifier: notifier, metrics: m, logger: logger, book: book}
}

func (e *testEnv) openWindow(purpose domain.Purpose) {
	e.store.AddWindow(domain.SchedulingWindow{
		Name:      "Semester",
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		Purpose:   purpose,
		IsActive:  true,
	})
}

func (e *testEnv) addSlot(start types.TimeString, purpose domain.Purpose, capacity int) *domain.Slot {
	end, _ := start.AddMinutes(30)
	return e.store.AddSlot(domain.Slot{
		Date:      slotDate,
		StartTime: start,
		EndTime:   end,
		Purpose:   purpose,
		Capacity:  capacity,
	})
}

func request(slotID int64, userID int64) *Request {
	return &Request{UserID: userID, SlotID: slotID, Purpose: "NEW_ID"}
}

func TestUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeNewID)
	slot := env.addSlot("09:00", domain.PurposeNewID, 2)

	resp, err := env.book.Execute(context.Background(), &Request{
		UserID:  100,
		SlotID:  slot.ID,
		Purpose: "new_id",
		Notes:   ptr.Ptr("  first card  "),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingApproval, resp.Status)
	assert.NotEqual(t, uuid.Nil, resp.ReservationToken)
	assert.Equal(t, slotDate, resp.AppointmentDate)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "first card", *resp.Notes)

	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)

	sent := env.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notificationservice.EventAppointmentBooked, sent[0].Event)
	assert.Equal(t, resp.ID, sent[0].AppointmentID)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ReservationsTotal.WithLabelValues("success")))
}

func TestUseCase_Execute_ClosureVeto(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeAll)
	slot := env.addSlot("09:00", domain.PurposeNewID, 10)
	env.store.AddClosure(slotDate, "Holiday")

	_, err := env.book.Execute(context.Background(), request(slot.ID, 100))
	assert.ErrorIs(t, err, domain.ErrClosedDate)
	assert.False(t, domain.IsRetryable(err))
	assert.Equal(t, 0, env.store.Slot(slot.ID).BookedCount)
	assert.Zero(t, env.store.AppointmentCount())
	assert.Empty(t, env.notifier.Sent())
}

func TestUseCase_Execute_WindowFailClosed(t *testing.T) {
	env := newTestEnv(t)
	slot := env.addSlot("09:00", domain.PurposeNewID, 10)

	_, err := env.book.Execute(context.Background(), request(slot.ID, 100))
	assert.ErrorIs(t, err, domain.ErrOutsideSchedulingWindow)

	// окно для другой услуги не открывает запись
	env.openWindow(domain.PurposeRenewal)
	_, err = env.book.Execute(context.Background(), request(slot.ID, 100))
	assert.ErrorIs(t, err, domain.ErrOutsideSchedulingWindow)
	assert.Equal(t, 0, env.store.ReserveCalls())
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(env *testEnv) *Request
		wantErr error
	}{
		{
			name: "unknown slot",
			prepare: func(env *testEnv) *Request {
				return request(999, 100)
			},
			wantErr: domain.ErrSlotNotFound,
		},
		{
			name: "purpose does not match slot",
			prepare: func(env *testEnv) *Request {
				slot := env.addSlot("09:00", domain.PurposeRenewal, 1)
				return request(slot.ID, 100)
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "picture option for new id",
			prepare: func(env *testEnv) *Request {
				slot := env.addSlot("09:00", domain.PurposeNewID, 1)
				req := request(slot.ID, 100)
				req.PictureOption = ptr.Ptr("NEW_PICTURE")
				return req
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "slot in the past",
			prepare: func(env *testEnv) *Request {
				slot := env.store.AddSlot(domain.Slot{
					Date:      time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC),
					StartTime: "09:00",
					EndTime:   "09:30",
					Purpose:   domain.PurposeNewID,
					Capacity:  1,
				})
				return request(slot.ID, 100)
			},
			wantErr: domain.ErrSlotInPast,
		},
		{
			name: "full slot",
			prepare: func(env *testEnv) *Request {
				slot := env.store.AddSlot(domain.Slot{
					Date:        slotDate,
					StartTime:   "09:00",
					EndTime:     "09:30",
					Purpose:     domain.PurposeNewID,
					Capacity:    1,
					BookedCount: 1,
				})
				return request(slot.ID, 100)
			},
			wantErr: domain.ErrSlotFull,
		},
		{
			name: "invalid user",
			prepare: func(env *testEnv) *Request {
				return request(1, 0)
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.openWindow(domain.PurposeAll)

			_, err := env.book.Execute(context.Background(), tt.prepare(env))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, env.store.AppointmentCount())
		})
	}
}

func TestUseCase_Execute_RenewalWithPictureOption(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeAll)
	slot := env.addSlot("10:00", domain.PurposeRenewal, 1)

	resp, err := env.book.Execute(context.Background(), &Request{
		UserID:        100,
		SlotID:        slot.ID,
		Purpose:       "RENEWAL",
		PictureOption: ptr.Ptr("keep_picture"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PictureOption)
	assert.Equal(t, domain.PictureOptionKeep, *resp.PictureOption)
}

func TestUseCase_Execute_CapacityUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeNewID)

	const capacity = 5
	const workers = 40
	slot := env.addSlot("09:00", domain.PurposeNewID, capacity)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		full      int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()

			_, err := env.book.Execute(context.Background(), request(slot.ID, userID))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrSlotFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, capacity, successes)
	assert.Equal(t, workers-capacity, full)
	assert.Equal(t, capacity, env.store.Slot(slot.ID).BookedCount)
	assert.Equal(t, capacity, env.store.AppointmentCount())
}

func TestScenario_TwoConcurrentBookingsThenDecline(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeNewID)
	slot := env.addSlot("09:00", domain.PurposeNewID, 1)

	transition := transition_appointment.NewUseCase(
		env.store.Appointments(),
		env.store.Slots(),
		domain.NewStatusMachine(nil),
		env.notifier,
		env.metrics,
		fakes.NewTxManager(env.store),
		env.logger,
	)

	// Две параллельные записи на последнее место
	type outcome struct {
		resp *Response
		err  error
	}
	results := make(chan outcome, 2)
	for _, userID := range []int64{100, 200} {
		go func(userID int64) {
			resp, err := env.book.Execute(context.Background(), request(slot.ID, userID))
			results <- outcome{resp: resp, err: err}
		}(userID)
	}

	var booked *Response
	var fullCount int
	for i := 0; i < 2; i++ {
		o := <-results
		if o.err == nil {
			booked = o.resp
			continue
		}
		require.ErrorIs(t, o.err, domain.ErrSlotFull)
		assert.True(t, domain.IsRetryable(o.err))
		fullCount++
	}
	require.NotNil(t, booked)
	assert.Equal(t, 1, fullCount)
	assert.Equal(t, domain.StatusPendingApproval, booked.Status)
	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)

	// Отклонение освобождает место
	_, err := transition.Execute(context.Background(), &transition_appointment.Request{
		AppointmentID: booked.ID,
		Status:        "declined",
		Remarks:       ptr.Ptr("duplicate"),
		Requester:     staff,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, env.store.Slot(slot.ID).BookedCount)

	// Третья запись проходит
	third, err := env.book.Execute(context.Background(), request(slot.ID, 300))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, third.Status)
	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)
}

func TestRoundTrip_BookThenListSlots(t *testing.T) {
	env := newTestEnv(t)
	env.openWindow(domain.PurposeAll)
	first := env.addSlot("09:00", domain.PurposeNewID, 3)
	second := env.addSlot("09:30", domain.PurposeNewID, 3)

	list := get_available_slots.NewUseCase(
		env.store.Slots(),
		closures.NewService(env.store.Closures(), env.logger),
		windows.NewService(env.store.Windows(), env.logger),
		env.logger,
	)

	before, err := list.Execute(context.Background(), &get_available_slots.Request{Date: slotDate})
	require.NoError(t, err)

	_, err = env.book.Execute(context.Background(), request(first.ID, 100))
	require.NoError(t, err)

	after, err := list.Execute(context.Background(), &get_available_slots.Request{Date: slotDate})
	require.NoError(t, err)

	counts := func(resp *get_available_slots.Response) map[int64]int {
		out := make(map[int64]int)
		for _, s := range resp.Slots {
			out[s.ID] = s.BookedCount
		}
		return out
	}

	assert.Equal(t, counts(before)[first.ID]+1, counts(after)[first.ID])
	assert.Equal(t, counts(before)[second.ID], counts(after)[second.ID])
}
