package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

// Slot временной слот приёма с фиксированной вместимостью
// Инвариант: 0 <= BookedCount <= Capacity
type Slot struct {
	ID          int64
	Date        time.Time // календарный день (без времени)
	StartTime   types.TimeString
	EndTime     types.TimeString
	Purpose     Purpose
	Capacity    int
	BookedCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AvailableCapacity количество свободных мест
func (s *Slot) AvailableCapacity() int {
	available := s.Capacity - s.BookedCount
	if available < 0 {
		return 0
	}
	return available
}

// IsFull true, если свободных мест нет
func (s *Slot) IsFull() bool {
	return s.AvailableCapacity() == 0
}

// OccupancyRate заполненность слота в процентах (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.BookedCount) / float64(s.Capacity) * 100
}

// ReservationToken подтверждение захвата одной единицы вместимости слота
// Соответствует ровно одной записи (Appointment)
type ReservationToken struct {
	Token      uuid.UUID
	SlotID     int64
	ReservedAt time.Time
}

// NewReservationToken выпускает новый токен для слота
func NewReservationToken(slotID int64, now time.Time) ReservationToken {
	return ReservationToken{
		Token:      uuid.New(),
		SlotID:     slotID,
		ReservedAt: now,
	}
}
