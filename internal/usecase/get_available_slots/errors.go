package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrInvalidInput)
)
