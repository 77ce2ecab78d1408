package windows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// WindowRepository интерфейс репозитория окон записи
type WindowRepository interface {
	Create(ctx context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.SchedulingWindow, error)
	Update(ctx context.Context, window *domain.SchedulingWindow) (*domain.SchedulingWindow, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]*domain.SchedulingWindow, error)
	ListActiveForDate(ctx context.Context, date time.Time) ([]*domain.SchedulingWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
