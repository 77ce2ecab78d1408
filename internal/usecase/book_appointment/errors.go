package book_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("book_appointment: %w", domain.ErrInvalidInput)

	// ErrPurposeMismatch возвращается, когда услуга записи не совпадает с услугой слота
	ErrPurposeMismatch = fmt.Errorf("book_appointment: purpose does not match the slot: %w", domain.ErrInvalidInput)
)

// translateLedgerError переводит ошибки реестра слотов в доменные
func translateLedgerError(op string, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		return domain.ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotFull):
		return domain.ErrSlotFull
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrInternal, op, err)
	}
}
