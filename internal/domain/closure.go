package domain

import "time"

// CalendarClosure дата, в которую офис закрыт для новых записей
// На одну дату не более одной записи
type CalendarClosure struct {
	Date      time.Time
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
