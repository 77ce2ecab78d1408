package transition_appointment

import (
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	appointmentModels "github.com/m04kA/SMC-IDCardBooking/internal/service/appointments/models"
	transitionAppointment "github.com/m04kA/SMC-IDCardBooking/internal/usecase/transition_appointment"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	Remarks *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Appointment    *appointmentModels.AppointmentResponse `json:"appointment"`
	PreviousStatus string                                 `json:"previousStatus"`
	SlotReleased   bool                                   `json:"slotReleased"`
	SlotReacquired bool                                   `json:"slotReacquired"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID int64, requester domain.Requester) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		Status:        r.Status,
		Remarks:       r.Remarks,
		Requester:     requester,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		Appointment:    appointmentModels.FromDomainAppointment(resp.Appointment),
		PreviousStatus: string(resp.PreviousStatus),
		SlotReleased:   resp.CapacityEffect == domain.CapacityRelease,
		SlotReacquired: resp.CapacityEffect == domain.CapacityReacquire,
	}
}
