package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// validatedRequest разобранные поля запроса
type validatedRequest struct {
	purpose       domain.Purpose
	pictureOption *domain.PictureOption
	notes         *string
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*validatedRequest, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	purpose, err := domain.ParsePurpose(req.Purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result := &validatedRequest{purpose: purpose}

	// Вариант фотографии имеет смысл только при перевыпуске
	if req.PictureOption != nil && strings.TrimSpace(*req.PictureOption) != "" {
		if purpose != domain.PurposeRenewal {
			return nil, fmt.Errorf("%w: pictureOption is only allowed for RENEWAL", ErrInvalidInput)
		}
		option, err := domain.ParsePictureOption(*req.PictureOption)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		result.pictureOption = &option
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if len(notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		if notes != "" {
			result.notes = &notes
		}
	}

	return result, nil
}

// isDateInPast проверяет, что дата слота раньше сегодняшнего дня (в часовом поясе now)
func isDateInPast(slotDate time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return domain.DateOnly(slotDate).Before(today)
}
