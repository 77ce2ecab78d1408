package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/fakes"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/closures"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/windows"
	"github.com/m04kA/SMC-IDCardBooking/pkg/ptr"
)

var date = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(store *fakes.Store) *UseCase {
	logger := &fakes.Logger{}
	return NewUseCase(
		store.Slots(),
		closures.NewService(store.Closures(), logger),
		windows.NewService(store.Windows(), logger),
		logger,
	)
}

func seedSlots(store *fakes.Store) {
	store.AddSlot(domain.Slot{Date: date, StartTime: "09:30", EndTime: "10:00", Purpose: domain.PurposeNewID, Capacity: 2})
	store.AddSlot(domain.Slot{Date: date, StartTime: "09:00", EndTime: "09:30", Purpose: domain.PurposeNewID, Capacity: 1, BookedCount: 1})
	store.AddSlot(domain.Slot{Date: date, StartTime: "09:00", EndTime: "09:30", Purpose: domain.PurposeRenewal, Capacity: 3})
	store.AddSlot(domain.Slot{Date: date.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "09:30", Purpose: domain.PurposeNewID, Capacity: 3})
}

func window(purpose domain.Purpose) domain.SchedulingWindow {
	return domain.SchedulingWindow{
		Name:      "Semester",
		StartDate: date.AddDate(0, 0, -7),
		EndDate:   date.AddDate(0, 0, 7),
		Purpose:   purpose,
		IsActive:  true,
	}
}

func TestUseCase_Execute_FiltersByWindow(t *testing.T) {
	store := fakes.NewStore()
	seedSlots(store)
	store.AddWindow(window(domain.PurposeNewID))

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.PurposeNewID, s.Purpose)
		assert.True(t, s.Date.Equal(date))
	}

	// Заполненный слот тоже возвращается, сортировка по времени начала
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.True(t, resp.Slots[0].IsFull())
	assert.Equal(t, "09:30", resp.Slots[1].StartTime.String())
}

func TestUseCase_Execute_AllPurposesWindow(t *testing.T) {
	store := fakes.NewStore()
	seedSlots(store)
	store.AddWindow(window(domain.PurposeAll))

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)

	resp, err = newUseCase(store).Execute(context.Background(), &Request{Date: date, Purpose: ptr.Ptr("renewal")})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.PurposeRenewal, resp.Slots[0].Purpose)
}

func TestUseCase_Execute_ClosedDate(t *testing.T) {
	store := fakes.NewStore()
	seedSlots(store)
	store.AddWindow(window(domain.PurposeAll))
	store.AddClosure(date, "Holiday")

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	require.NotNil(t, resp.ClosureRemarks)
	assert.Equal(t, "Holiday", *resp.ClosureRemarks)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_NoWindow(t *testing.T) {
	store := fakes.NewStore()
	seedSlots(store)

	inactive := window(domain.PurposeAll)
	inactive.IsActive = false
	store.AddWindow(inactive)

	resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.False(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	store := fakes.NewStore()

	_, err := newUseCase(store).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newUseCase(store).Execute(context.Background(), &Request{Date: date, Purpose: ptr.Ptr("ALL")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
