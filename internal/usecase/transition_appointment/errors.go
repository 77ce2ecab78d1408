package transition_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_appointment: %w", domain.ErrInvalidInput)
)

// translateStorageError переводит ошибки хранилища в доменные
func translateStorageError(op string, err error) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		return domain.ErrAppointmentNotFound
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		return domain.ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotFull):
		return domain.ErrSlotFull
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrInternal, op, err)
	}
}
