package transition_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) error
}

// SlotLedger интерфейс реестра слотов
type SlotLedger interface {
	Reserve(ctx context.Context, slotID int64) (domain.ReservationToken, error)
	Release(ctx context.Context, slotID int64) error
}

// Notifier интерфейс отправки уведомлений (best-effort)
type Notifier interface {
	NotifyAsync(n notificationservice.Notification)
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveTransition(status string, result string)
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
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
