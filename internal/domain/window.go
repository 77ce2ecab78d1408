package domain

import (
	"fmt"
	"strings"
	"time"
)

// SchedulingWindow период, в который разрешена запись на услугу
type SchedulingWindow struct {
	ID          int64
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Purpose     Purpose // конкретная услуга или PurposeAll
	IsActive    bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contains true, если дата попадает в окно (границы включительно)
func (w *SchedulingWindow) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(w.StartDate)) && !d.After(DateOnly(w.EndDate))
}

// Matches true, если окно относится к услуге
func (w *SchedulingWindow) Matches(purpose Purpose) bool {
	return w.Purpose == PurposeAll || w.Purpose == purpose
}

// Allows true, если окно активно, содержит дату и относится к услуге
func (w *SchedulingWindow) Allows(date time.Time, purpose Purpose) bool {
	return w.IsActive && w.Contains(date) && w.Matches(purpose)
}

// Validate проверяет поля окна
func (w *SchedulingWindow) Validate() error {
	name := strings.TrimSpace(w.Name)
	if name == "" {
		return fmt.Errorf("%w: window name is required", ErrInvalidInput)
	}
	if len(name) > MaxWindowNameLength {
		return fmt.Errorf("%w: window name is too long", ErrInvalidInput)
	}
	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return fmt.Errorf("%w: window dates are required", ErrInvalidInput)
	}
	if DateOnly(w.EndDate).Before(DateOnly(w.StartDate)) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if _, err := ParseWindowPurpose(string(w.Purpose)); err != nil {
		return err
	}
	if w.Description != nil && len(*w.Description) > MaxWindowDescriptionLen {
		return fmt.Errorf("%w: window description is too long", ErrInvalidInput)
	}
	return nil
}

// IsBookable решение политики окон записи: хотя бы одно активное окно разрешает дату и услугу
// Если подходящих окон нет, запись закрыта (fail-closed)
func IsBookable(windows []*SchedulingWindow, date time.Time, purpose Purpose) bool {
	for _, w := range windows {
		if w.Allows(date, purpose) {
			return true
		}
	}
	return false
}

// DateOnly отбрасывает время, сохраняя календарный день
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}
