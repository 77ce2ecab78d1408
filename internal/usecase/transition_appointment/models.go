package transition_appointment

import "github.com/m04kA/SMC-IDCardBooking/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	AppointmentID int64
	Status        string
	Remarks       *string // обязательно для on-hold, declined, for-printing
	Requester     domain.Requester
}

// Response модель ответа после смены статуса
type Response struct {
	Appointment    *domain.Appointment
	PreviousStatus domain.AppointmentStatus
	CapacityEffect domain.CapacityEffect
}
