package transition_appointment

import (
	"context"
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
	"github.com/m04kA/SMC-IDCardBooking/pkg/metrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/ptr"
)

var (
	now   = time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	staff = domain.Requester{UserID: 7, Role: domain.RoleStaff}
)

type testEnv struct {
	store    *fakes.Store
	notifier *fakes.Notifier
	metrics  *metrics.Metrics
	uc       *UseCase
}

func newTestEnv(t *testing.T, machine *domain.StatusMachine) *testEnv {
	t.Helper()

	store := fakes.NewStore()
	notifier := &fakes.Notifier{}
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	uc := NewUseCase(
		store.Appointments(),
		store.Slots(),
		machine,
		notifier,
		m,
		fakes.NewTxManager(store),
		&fakes.Logger{},
	).WithTimeProvider(&fakes.Clock{T: now})

	return &testEnv{store: store, notifier: notifier, metrics: m, uc: uc}
}

// seed создаёт слот и запись в нём; место уже занято, если статус его удерживает
func (e *testEnv) seed(t *testing.T, capacity, booked int, status domain.AppointmentStatus) (domain.Slot, *domain.Appointment) {
	t.Helper()

	slot := e.store.AddSlot(domain.Slot{
		Date:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "09:30",
		Purpose:     domain.PurposeNewID,
		Capacity:    capacity,
		BookedCount: booked,
	})

	appointment, err := e.store.Appointments().Create(context.Background(), &domain.Appointment{
		UserID:           100,
		SlotID:           slot.ID,
		Purpose:          domain.PurposeNewID,
		Status:           status,
		ReservationToken: uuid.New(),
		AppointmentDate:  slot.Date,
		StartTime:        slot.StartTime,
		EndTime:          slot.EndTime,
	})
	require.NoError(t, err)

	return *slot, appointment
}

func TestUseCase_Execute_ForwardTransition(t *testing.T) {
	env := newTestEnv(t, nil)
	slot, appointment := env.seed(t, 2, 1, domain.StatusPendingApproval)

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "for-printing",
		Remarks:       ptr.Ptr("photo approved"),
		Requester:     staff,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingApproval, resp.PreviousStatus)
	assert.Equal(t, domain.CapacityKeep, resp.CapacityEffect)
	assert.Equal(t, domain.StatusForPrinting, resp.Appointment.Status)

	stored := env.store.Appointment(appointment.ID)
	assert.Equal(t, domain.StatusForPrinting, stored.Status)
	require.NotNil(t, stored.StatusUpdatedBy)
	assert.Equal(t, staff.UserID, *stored.StatusUpdatedBy)
	require.NotNil(t, stored.StatusUpdatedAt)
	assert.True(t, now.Equal(*stored.StatusUpdatedAt))
	require.NotNil(t, stored.AdminRemarks)
	assert.Equal(t, "photo approved", *stored.AdminRemarks)

	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)

	sent := env.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notificationservice.EventAppointmentStatusChanged, sent[0].Event)
	require.NotNil(t, sent[0].PreviousStatus)
	assert.Equal(t, string(domain.StatusPendingApproval), *sent[0].PreviousStatus)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StatusTransitionsTotal.WithLabelValues("for-printing", "success")))
}

func TestUseCase_Execute_DeclineReleasesOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	slot, appointment := env.seed(t, 1, 1, domain.StatusToClaim)

	req := &Request{
		AppointmentID: appointment.ID,
		Status:        "declined",
		Remarks:       ptr.Ptr("documents missing"),
		Requester:     staff,
	}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.CapacityRelease, resp.CapacityEffect)
	assert.Equal(t, 0, env.store.Slot(slot.ID).BookedCount)
	assert.Equal(t, 1, env.store.ReleaseCalls())

	// Повторный declined не освобождает место второй раз
	resp, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.CapacityKeep, resp.CapacityEffect)
	assert.Equal(t, 0, env.store.Slot(slot.ID).BookedCount)
	assert.Equal(t, 1, env.store.ReleaseCalls())

	// Статус не изменился, второе уведомление не отправляется
	assert.Len(t, env.notifier.Sent(), 1)
}

func TestUseCase_Execute_RemarkRequired(t *testing.T) {
	for _, status := range []string{"on-hold", "declined", "for-printing"} {
		t.Run(status, func(t *testing.T) {
			env := newTestEnv(t, nil)
			slot, appointment := env.seed(t, 1, 1, domain.StatusPendingApproval)

			_, err := env.uc.Execute(context.Background(), &Request{
				AppointmentID: appointment.ID,
				Status:        status,
				Remarks:       ptr.Ptr("   "),
				Requester:     staff,
			})
			assert.ErrorIs(t, err, domain.ErrRemarkRequired)

			stored := env.store.Appointment(appointment.ID)
			assert.Equal(t, domain.StatusPendingApproval, stored.Status)
			assert.Nil(t, stored.StatusUpdatedAt)
			assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)
			assert.Empty(t, env.notifier.Sent())
		})
	}
}

func TestUseCase_Execute_OptionalRemarkKeepsPrevious(t *testing.T) {
	env := newTestEnv(t, nil)
	_, appointment := env.seed(t, 1, 1, domain.StatusPendingApproval)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "on-hold",
		Remarks:       ptr.Ptr("blurry photo"),
		Requester:     staff,
	})
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "to-claim",
		Requester:     staff,
	})
	require.NoError(t, err)

	stored := env.store.Appointment(appointment.ID)
	assert.Equal(t, domain.StatusToClaim, stored.Status)
	require.NotNil(t, stored.AdminRemarks)
	assert.Equal(t, "blurry photo", *stored.AdminRemarks)
}

func TestUseCase_Execute_ReacquireFromDeclined(t *testing.T) {
	env := newTestEnv(t, nil)
	slot, appointment := env.seed(t, 1, 0, domain.StatusDeclined)

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "pending-approval",
		Requester:     staff,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CapacityReacquire, resp.CapacityEffect)
	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)
	assert.NotEqual(t, appointment.ReservationToken, env.store.Appointment(appointment.ID).ReservationToken)
}

func TestUseCase_Execute_ReacquireFromDeclinedSlotFull(t *testing.T) {
	env := newTestEnv(t, nil)
	slot, appointment := env.seed(t, 1, 1, domain.StatusDeclined)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "confirmed",
		Requester:     staff,
	})
	assert.ErrorIs(t, err, domain.ErrSlotFull)

	stored := env.store.Appointment(appointment.ID)
	assert.Equal(t, domain.StatusDeclined, stored.Status)
	assert.Equal(t, appointment.ReservationToken, stored.ReservationToken)
	assert.Equal(t, 1, env.store.Slot(slot.ID).BookedCount)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StatusTransitionsTotal.WithLabelValues("confirmed", string(domain.KindSlotFull))))
}

func TestUseCase_Execute_RestrictedTable(t *testing.T) {
	table, err := domain.ParseTransitionTable(map[string][]string{
		"pending-approval": {"on-hold", "declined"},
	})
	require.NoError(t, err)

	env := newTestEnv(t, domain.NewStatusMachine(table))
	_, appointment := env.seed(t, 1, 1, domain.StatusPendingApproval)

	_, err = env.uc.Execute(context.Background(), &Request{
		AppointmentID: appointment.ID,
		Status:        "confirmed",
		Requester:     staff,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Equal(t, domain.StatusPendingApproval, env.store.Appointment(appointment.ID).Status)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func(id int64) *Request
		wantErr error
	}{
		{
			name: "student cannot change status",
			req: func(id int64) *Request {
				return &Request{AppointmentID: id, Status: "confirmed", Requester: domain.Requester{UserID: 100, Role: domain.RoleStudent}}
			},
			wantErr: domain.ErrAccessDenied,
		},
		{
			name: "unknown status",
			req: func(id int64) *Request {
				return &Request{AppointmentID: id, Status: "archived", Requester: staff}
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown appointment",
			req: func(id int64) *Request {
				return &Request{AppointmentID: id + 1000, Status: "confirmed", Requester: staff}
			},
			wantErr: domain.ErrAppointmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			_, appointment := env.seed(t, 1, 1, domain.StatusPendingApproval)

			_, err := env.uc.Execute(context.Background(), tt.req(appointment.ID))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.StatusPendingApproval, env.store.Appointment(appointment.ID).Status)
		})
	}
}
