package notificationservice

// Типы уведомлений
const (
	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentStatusChanged = "appointment.status_changed"
)

// Notification уведомление студенту о его записи
type Notification struct {
	Event           string  `json:"event"`
	UserID          int64   `json:"user_id"`
	AppointmentID   int64   `json:"appointment_id"`
	Purpose         string  `json:"purpose"`
	Status          string  `json:"status"`
	PreviousStatus  *string `json:"previous_status,omitempty"`
	Remarks         *string `json:"remarks,omitempty"`
	AppointmentDate string  `json:"appointment_date"` // "2025-09-01"
	StartTime       string  `json:"start_time"`       // "09:00"
}
