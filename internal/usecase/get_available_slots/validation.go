package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*domain.Purpose, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Purpose == nil {
		return nil, nil
	}

	purpose, err := domain.ParsePurpose(*req.Purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return &purpose, nil
}
