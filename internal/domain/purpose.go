package domain

import (
	"fmt"
	"strings"
)

// Purpose тип услуги по ID-карте
type Purpose string

const (
	PurposeNewID           Purpose = "NEW_ID"
	PurposeRenewal         Purpose = "RENEWAL"
	PurposeLostReplacement Purpose = "LOST_REPLACEMENT"

	// PurposeAll используется только в окнах записи и совпадает с любой услугой
	PurposeAll Purpose = "ALL"
)

// AllPurposes услуги, на которые можно записаться (без PurposeAll)
var AllPurposes = []Purpose{
	PurposeNewID,
	PurposeRenewal,
	PurposeLostReplacement,
}

// ParsePurpose разбирает тип услуги для слота или записи (ALL недопустим)
func ParsePurpose(s string) (Purpose, error) {
	p := Purpose(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllPurposes {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown purpose %q", ErrInvalidInput, s)
}

// ParseWindowPurpose разбирает тип услуги для окна записи (ALL допустим)
func ParseWindowPurpose(s string) (Purpose, error) {
	if Purpose(strings.ToUpper(strings.TrimSpace(s))) == PurposeAll {
		return PurposeAll, nil
	}
	return ParsePurpose(s)
}

// PictureOption вариант фотографии при перевыпуске карты
type PictureOption string

const (
	PictureOptionNew  PictureOption = "NEW_PICTURE"
	PictureOptionKeep PictureOption = "KEEP_PICTURE"
)

// ParsePictureOption разбирает вариант фотографии
func ParsePictureOption(s string) (PictureOption, error) {
	switch opt := PictureOption(strings.ToUpper(strings.TrimSpace(s))); opt {
	case PictureOptionNew, PictureOptionKeep:
		return opt, nil
	default:
		return "", fmt.Errorf("%w: unknown picture option %q", ErrInvalidInput, s)
	}
}
