package closures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// ClosureRepository интерфейс репозитория закрытых дат
type ClosureRepository interface {
	Upsert(ctx context.Context, closure *domain.CalendarClosure) (*domain.CalendarClosure, error)
	Delete(ctx context.Context, date time.Time) (bool, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.CalendarClosure, error)
	IsClosed(ctx context.Context, date time.Time) (bool, error)
	List(ctx context.Context, from, to *time.Time) ([]*domain.CalendarClosure, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
