package fakes

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/appointment"
	closureRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/closure"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
	windowRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/window"
)

// SlotRepository in-memory реестр слотов с теми же ошибками, что и PostgreSQL реализация
type SlotRepository struct{ s *Store }

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository { return &SlotRepository{s: s} }

func (r *SlotRepository) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date := domain.DateOnly(slot.Date)
	for _, existing := range r.s.slots {
		if existing.Date.Equal(date) && existing.StartTime == slot.StartTime && existing.Purpose == slot.Purpose {
			return nil, slotRepo.ErrDuplicateSlot
		}
	}

	created := *slot
	created.ID = r.s.id()
	created.Date = date
	created.BookedCount = 0
	r.s.slots[created.ID] = created
	return &created, nil
}

func (r *SlotRepository) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepository) ListForDate(_ context.Context, date time.Time, purpose *domain.Purpose) ([]*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := domain.DateOnly(date)
	result := make([]*domain.Slot, 0)
	for _, slot := range r.s.slots {
		if !slot.Date.Equal(day) {
			continue
		}
		if purpose != nil && slot.Purpose != *purpose {
			continue
		}
		slot := slot
		result = append(result, &slot)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].Purpose < result[j].Purpose
	})
	return result, nil
}

func (r *SlotRepository) Reserve(_ context.Context, slotID int64) (domain.ReservationToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.reserveCalls++
	slot, ok := r.s.slots[slotID]
	if !ok {
		return domain.ReservationToken{}, slotRepo.ErrSlotNotFound
	}
	if slot.BookedCount >= slot.Capacity {
		return domain.ReservationToken{}, slotRepo.ErrSlotFull
	}
	slot.BookedCount++
	r.s.slots[slotID] = slot

	return domain.NewReservationToken(slotID, time.Now()), nil
}

func (r *SlotRepository) Release(_ context.Context, slotID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.releaseCalls++
	slot, ok := r.s.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.BookedCount > 0 {
		slot.BookedCount--
	}
	r.s.slots[slotID] = slot
	return nil
}

func (r *SlotRepository) AvailableCapacity(_ context.Context, slotID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[slotID]
	if !ok {
		return 0, slotRepo.ErrSlotNotFound
	}
	return slot.Capacity - slot.BookedCount, nil
}

func (r *SlotRepository) UpdateCapacity(_ context.Context, slotID int64, capacity int) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if capacity < slot.BookedCount {
		return nil, slotRepo.ErrCapacityBelowBooked
	}
	slot.Capacity = capacity
	r.s.slots[slotID] = slot
	return &slot, nil
}

func (r *SlotRepository) Delete(_ context.Context, slotID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.slots[slotID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	for _, a := range r.s.appointments {
		if a.SlotID == slotID {
			return slotRepo.ErrSlotInUse
		}
	}
	delete(r.s.slots, slotID)
	return nil
}

// AppointmentRepository in-memory репозиторий записей
type AppointmentRepository struct{ s *Store }

// Appointments возвращает репозиторий записей
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

func (r *AppointmentRepository) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *appointment
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.appointments[created.ID] = created
	return &created, nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.GetByID(ctx, id)
}

func (r *AppointmentRepository) GetByUserID(_ context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.list(func(a domain.Appointment) bool {
		return a.UserID == userID && (status == nil || a.Status == *status)
	}), nil
}

func (r *AppointmentRepository) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.list(func(a domain.Appointment) bool {
		switch {
		case filter.UserID != nil && a.UserID != *filter.UserID:
			return false
		case filter.SlotID != nil && a.SlotID != *filter.SlotID:
			return false
		case filter.DateFrom != nil && a.AppointmentDate.Before(domain.DateOnly(*filter.DateFrom)):
			return false
		case filter.DateTo != nil && a.AppointmentDate.After(domain.DateOnly(*filter.DateTo)):
			return false
		case filter.Status != nil && a.Status != *filter.Status:
			return false
		case filter.Purpose != nil && a.Purpose != *filter.Purpose:
			return false
		}
		return true
	}), nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id int64, change domain.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}

	a.Status = change.Status
	updatedAt := change.UpdatedAt
	updatedBy := change.UpdatedBy
	a.StatusUpdatedAt = &updatedAt
	a.StatusUpdatedBy = &updatedBy
	if change.Remarks != nil {
		remarks := *change.Remarks
		a.AdminRemarks = &remarks
	}
	if change.ReservationToken != nil {
		a.ReservationToken = *change.ReservationToken
	}
	a.UpdatedAt = time.Now()
	r.s.appointments[id] = a
	return nil
}

func (r *AppointmentRepository) list(match func(domain.Appointment) bool) []*domain.Appointment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if match(a) {
			a := a
			result = append(result, &a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ClosureRepository in-memory репозиторий закрытых дат
type ClosureRepository struct{ s *Store }

// Closures возвращает репозиторий закрытых дат
func (s *Store) Closures() *ClosureRepository { return &ClosureRepository{s: s} }

func (r *ClosureRepository) Upsert(_ context.Context, closure *domain.CalendarClosure) (*domain.CalendarClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dateKey(closure.Date)
	stored := *closure
	stored.Date = domain.DateOnly(closure.Date)
	if existing, ok := r.s.closures[key]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	r.s.closures[key] = stored
	return &stored, nil
}

func (r *ClosureRepository) Delete(_ context.Context, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := dateKey(date)
	if _, ok := r.s.closures[key]; !ok {
		return false, nil
	}
	delete(r.s.closures, key)
	return true, nil
}

func (r *ClosureRepository) GetByDate(_ context.Context, date time.Time) (*domain.CalendarClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.closures[dateKey(date)]
	if !ok {
		return nil, closureRepo.ErrClosureNotFound
	}
	return &c, nil
}

func (r *ClosureRepository) IsClosed(_ context.Context, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.closures[dateKey(date)]
	return ok, nil
}

func (r *ClosureRepository) List(_ context.Context, from, to *time.Time) ([]*domain.CalendarClosure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.CalendarClosure, 0)
	for _, c := range r.s.closures {
		if from != nil && c.Date.Before(domain.DateOnly(*from)) {
			continue
		}
		if to != nil && c.Date.After(domain.DateOnly(*to)) {
			continue
		}
		c := c
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// WindowRepository in-memory репозиторий окон записи
type WindowRepository struct{ s *Store }

// Windows возвращает репозиторий окон записи
func (s *Store) Windows() *WindowRepository { return &WindowRepository{s: s} }

func (r *WindowRepository) Create(_ context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *window
	created.ID = r.s.id()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.s.windows[created.ID] = created
	return &created, nil
}

func (r *WindowRepository) GetByID(_ context.Context, id int64) (*domain.SchedulingWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.windows[id]
	if !ok {
		return nil, windowRepo.ErrWindowNotFound
	}
	return &w, nil
}

func (r *WindowRepository) Update(_ context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.windows[window.ID]
	if !ok {
		return nil, windowRepo.ErrWindowNotFound
	}
	updated := *window
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.s.windows[window.ID] = updated
	return &updated, nil
}

func (r *WindowRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.windows[id]; !ok {
		return windowRepo.ErrWindowNotFound
	}
	delete(r.s.windows, id)
	return nil
}

func (r *WindowRepository) List(_ context.Context, activeOnly bool) ([]*domain.SchedulingWindow, error) {
	return r.list(func(w domain.SchedulingWindow) bool { return !activeOnly || w.IsActive }), nil
}

func (r *WindowRepository) ListActiveForDate(_ context.Context, date time.Time) ([]*domain.SchedulingWindow, error) {
	return r.list(func(w domain.SchedulingWindow) bool { return w.IsActive && w.Contains(date) }), nil
}

func (r *WindowRepository) list(match func(domain.SchedulingWindow) bool) []*domain.SchedulingWindow {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.SchedulingWindow, 0)
	for _, w := range r.s.windows {
		if match(w) {
			w := w
			result = append(result, &w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
