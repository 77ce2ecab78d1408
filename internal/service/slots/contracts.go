package slots

import (
	"context"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// SlotRepository интерфейс реестра слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateCapacity(ctx context.Context, slotID int64, capacity int) (*domain.Slot, error)
	Delete(ctx context.Context, slotID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
