package domain

// Ограничения бизнес-валидации
const (
	MinSlotCapacity         = 1
	MaxSlotCapacity         = 500
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 480 // 8 часов
	MaxGenerateDays         = 92  // примерно квартал за один запрос генерации
	MaxNotesLength          = 500
	MaxRemarksLength        = 1000
	MaxWindowNameLength     = 120
	MaxWindowDescriptionLen = 1000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
