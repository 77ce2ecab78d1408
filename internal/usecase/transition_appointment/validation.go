package transition_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// validateRequest валидирует входные данные и права
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	if !req.Requester.IsStaff() {
		return "", domain.ErrAccessDenied
	}

	if req.AppointmentID <= 0 {
		return "", fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return "", fmt.Errorf("%w: remarks must be at most %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	return status, nil
}
