package book_appointment

import (
	appointmentModels "github.com/m04kA/SMC-IDCardBooking/internal/service/appointments/models"
	bookAppointment "github.com/m04kA/SMC-IDCardBooking/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
// Пользователь берётся из заголовков (middleware Auth), не из тела
type BookAppointmentRequest struct {
	SlotID        int64   `json:"slotId" validate:"required,gt=0"`
	Purpose       string  `json:"purpose" validate:"required"`
	PictureOption *string `json:"pictureOption,omitempty"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) *bookAppointment.Request {
	return &bookAppointment.Request{
		UserID:        userID,
		SlotID:        r.SlotID,
		Purpose:       r.Purpose,
		PictureOption: r.PictureOption,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *appointmentModels.AppointmentResponse {
	return appointmentModels.FromDomainAppointment(resp.ToDomain())
}
