package closures

import (
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// SetClosureRequest HTTP request model
type SetClosureRequest struct {
	Remarks string `json:"remarks" validate:"max=1000"`
}

// parseRange разбирает необязательные границы from/to
func parseRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if fromStr != "" {
		d, err := domain.ParseDate(fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &d
	}

	if toStr != "" {
		d, err := domain.ParseDate(toStr)
		if err != nil {
			return nil, nil, err
		}
		to = &d
	}

	return from, to, nil
}
