// Package fakes содержит in-memory реализации репозиториев и менеджера транзакций
// для тестов сервисов и use case без PostgreSQL.
package fakes

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// Store общее in-memory хранилище
type Store struct {
	mu sync.Mutex

	slots        map[int64]domain.Slot
	appointments map[int64]domain.Appointment
	closures     map[string]domain.CalendarClosure
	windows      map[int64]domain.SchedulingWindow
	nextID       int64

	// Счётчики вызовов реестра слотов
	reserveCalls int
	releaseCalls int

	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:        make(map[int64]domain.Slot),
		appointments: make(map[int64]domain.Appointment),
		closures:     make(map[string]domain.CalendarClosure),
		windows:      make(map[int64]domain.SchedulingWindow),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddSlot добавляет слот напрямую (для подготовки данных в тестах)
func (s *Store) AddSlot(slot domain.Slot) *domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot.ID == 0 {
		slot.ID = s.id()
	}
	slot.Date = domain.DateOnly(slot.Date)
	s.slots[slot.ID] = slot
	return &slot
}

// AddWindow добавляет окно записи напрямую
func (s *Store) AddWindow(window domain.SchedulingWindow) *domain.SchedulingWindow {
	s.mu.Lock()
	defer s.mu.Unlock()

	if window.ID == 0 {
		window.ID = s.id()
	}
	s.windows[window.ID] = window
	return &window
}

// AddClosure закрывает дату напрямую
func (s *Store) AddClosure(date time.Time, remarks string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closures[dateKey(date)] = domain.CalendarClosure{Date: domain.DateOnly(date), Remarks: remarks}
}

// Slot возвращает копию слота
func (s *Store) Slot(id int64) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id]
}

// Appointment возвращает копию записи
func (s *Store) Appointment(id int64) domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id]
}

// AppointmentCount количество записей
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// ReleaseCalls сколько раз вызывался Release
func (s *Store) ReleaseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseCalls
}

// ReserveCalls сколько раз вызывался Reserve
func (s *Store) ReserveCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveCalls
}

type snapshot struct {
	slots        map[int64]domain.Slot
	appointments map[int64]domain.Appointment
	closures     map[string]domain.CalendarClosure
	windows      map[int64]domain.SchedulingWindow
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		slots:        copyMap(s.slots),
		appointments: copyMap(s.appointments),
		closures:     copyMap(s.closures),
		windows:      copyMap(s.windows),
		nextID:       s.nextID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = snap.slots
	s.appointments = snap.appointments
	s.closures = snap.closures
	s.windows = snap.windows
	s.nextID = snap.nextID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func dateKey(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateFormat)
}

type txKey struct{}

// TxManager сериализует транзакции глобальным мьютексом и откатывает изменения при ошибке
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций поверх хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// Clock фиксированные часы
type Clock struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (c *Clock) Now() time.Time {
	return c.T
}
