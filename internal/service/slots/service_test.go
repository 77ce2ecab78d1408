package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/fakes"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

func newService() (*Service, *fakes.Store) {
	store := fakes.NewStore()
	return NewService(store.Slots(), fakes.NewTxManager(store), &fakes.Logger{}), store
}

func TestGenerateTimeRanges(t *testing.T) {
	tests := []struct {
		name     string
		open     types.TimeString
		close    types.TimeString
		duration int
		want     []string
	}{
		{"exact fit", "09:00", "10:00", 30, []string{"09:00-09:30", "09:30-10:00"}},
		{"tail dropped", "09:00", "10:10", 30, []string{"09:00-09:30", "09:30-10:00"}},
		{"duration longer than day", "09:00", "09:20", 30, []string{}},
		{"late evening", "23:00", "23:59", 30, []string{"23:00-23:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, r := range generateTimeRanges(tt.open, tt.close, tt.duration) {
				got = append(got, r.start.String()+"-"+r.end.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateDates_SkipWeekends(t *testing.T) {
	// 2025-09-05 пятница, 2025-09-08 понедельник
	from := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	assert.Len(t, generateDates(from, to, false), 4)

	dates := generateDates(from, to, true)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Friday, dates[0].Weekday())
	assert.Equal(t, time.Monday, dates[1].Weekday())
}

func TestService_GenerateSlots(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	req := &models.GenerateSlotsRequest{
		DateFrom:        "2025-09-01",
		DateTo:          "2025-09-02",
		OpenTime:        "08:00",
		CloseTime:       "09:00",
		DurationMinutes: 30,
		Capacity:        5,
		Purpose:         "NEW_ID",
	}

	resp, err := svc.GenerateSlots(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Created, 4)
	assert.Zero(t, resp.Skipped)
	assert.Equal(t, 5, resp.Created[0].AvailableCapacity)

	// повторная генерация пропускает существующие слоты
	resp, err = svc.GenerateSlots(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, 4, resp.Skipped)

	slots, err := store.Slots().ListForDate(ctx, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestService_GenerateSlots_AllPurposes(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GenerateSlots(context.Background(), &models.GenerateSlotsRequest{
		DateFrom:        "2025-09-01",
		DateTo:          "2025-09-01",
		OpenTime:        "08:00",
		CloseTime:       "08:30",
		DurationMinutes: 30,
		Capacity:        1,
		Purpose:         "ALL",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Created, len(domain.AllPurposes))
}

func TestService_GenerateSlots_Validation(t *testing.T) {
	svc, _ := newService()
	valid := models.GenerateSlotsRequest{
		DateFrom:        "2025-09-01",
		DateTo:          "2025-09-02",
		OpenTime:        "08:00",
		CloseTime:       "17:00",
		DurationMinutes: 30,
		Capacity:        5,
		Purpose:         "RENEWAL",
	}

	tests := []struct {
		name   string
		mutate func(r *models.GenerateSlotsRequest)
	}{
		{"dateTo before dateFrom", func(r *models.GenerateSlotsRequest) { r.DateTo = "2025-08-01" }},
		{"period too long", func(r *models.GenerateSlotsRequest) { r.DateTo = "2026-09-01" }},
		{"open after close", func(r *models.GenerateSlotsRequest) { r.OpenTime = "18:00" }},
		{"bad time", func(r *models.GenerateSlotsRequest) { r.CloseTime = "25:00" }},
		{"zero capacity", func(r *models.GenerateSlotsRequest) { r.Capacity = 0 }},
		{"short duration", func(r *models.GenerateSlotsRequest) { r.DurationMinutes = 1 }},
		{"unknown purpose", func(r *models.GenerateSlotsRequest) { r.Purpose = "VISA" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.GenerateSlots(context.Background(), &req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestService_UpdateCapacity(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()
	slot := store.AddSlot(domain.Slot{
		Date:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "09:30",
		Purpose:     domain.PurposeNewID,
		Capacity:    5,
		BookedCount: 3,
	})

	_, err := svc.UpdateCapacity(ctx, slot.ID, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := svc.UpdateCapacity(ctx, slot.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AvailableCapacity)

	_, err = svc.UpdateCapacity(ctx, 999, 3)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestService_DeleteSlot(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	free := store.AddSlot(domain.Slot{Date: date, StartTime: "09:00", EndTime: "09:30", Purpose: domain.PurposeNewID, Capacity: 1})
	used := store.AddSlot(domain.Slot{Date: date, StartTime: "09:30", EndTime: "10:00", Purpose: domain.PurposeNewID, Capacity: 1})

	_, err := store.Appointments().Create(ctx, &domain.Appointment{SlotID: used.ID, Status: domain.StatusDeclined})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(ctx, free.ID))
	assert.ErrorIs(t, svc.DeleteSlot(ctx, free.ID), domain.ErrSlotNotFound)
	assert.ErrorIs(t, svc.DeleteSlot(ctx, used.ID), domain.ErrSlotHasAppointments)
}
