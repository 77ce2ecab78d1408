package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// SlotLedger интерфейс реестра слотов
type SlotLedger interface {
	ListForDate(ctx context.Context, date time.Time, purpose *domain.Purpose) ([]*domain.Slot, error)
}

// ClosureGuard интерфейс календаря закрытых дат
type ClosureGuard interface {
	// GetClosure возвращает nil, если офис открыт
	GetClosure(ctx context.Context, date time.Time) (*domain.CalendarClosure, error)
}

// WindowPolicy интерфейс политики окон записи
type WindowPolicy interface {
	BookablePurposes(ctx context.Context, date time.Time) ([]domain.Purpose, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
