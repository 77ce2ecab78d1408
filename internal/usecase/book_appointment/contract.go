package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
)

// SlotLedger интерфейс реестра слотов
type SlotLedger interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID int64) (domain.ReservationToken, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ClosureGuard интерфейс календаря закрытых дат
type ClosureGuard interface {
	IsClosed(ctx context.Context, date time.Time) (bool, error)
}

// WindowPolicy интерфейс политики окон записи
type WindowPolicy interface {
	IsBookable(ctx context.Context, date time.Time, purpose domain.Purpose) (bool, error)
}

// Notifier интерфейс отправки уведомлений (best-effort)
type Notifier interface {
	NotifyAsync(n notificationservice.Notification)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveReservation(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
// Location задаёт часовой пояс офиса, от него зависит "сегодня"
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location != nil {
		return time.Now().In(p.Location)
	}
	return time.Now()
}
