package models

import (
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	Requester domain.Requester
	UserID    int64
	Status    *string
}

// ListAppointmentsRequest запрос сотрудника на список записей
type ListAppointmentsRequest struct {
	Requester domain.Requester
	DateFrom  *time.Time
	DateTo    *time.Time
	Status    *string
	Purpose   *string
	SlotID    *int64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		SlotID:   r.SlotID,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Purpose != nil {
		purpose, err := domain.ParsePurpose(*r.Purpose)
		if err != nil {
			return filter, err
		}
		filter.Purpose = &purpose
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	SlotID           int64   `json:"slotId"`
	Purpose          string  `json:"purpose"`
	PictureOption    *string `json:"pictureOption,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Status           string  `json:"status"`
	AdminRemarks     *string `json:"adminRemarks,omitempty"`
	ReservationToken string  `json:"reservationToken"`

	// Денормализованные данные слота
	AppointmentDate string `json:"appointmentDate"` // "2025-09-01"
	StartTime       string `json:"startTime"`       // "09:00"
	EndTime         string `json:"endTime"`         // "09:30"

	StatusUpdatedAt *time.Time `json:"statusUpdatedAt,omitempty"`
	StatusUpdatedBy *int64     `json:"statusUpdatedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		SlotID:           a.SlotID,
		Purpose:          string(a.Purpose),
		Notes:            a.Notes,
		Status:           string(a.Status),
		AdminRemarks:     a.AdminRemarks,
		ReservationToken: a.ReservationToken.String(),
		AppointmentDate:  a.AppointmentDate.Format(domain.DateFormat),
		StartTime:        a.StartTime.String(),
		EndTime:          a.EndTime.String(),
		StatusUpdatedAt:  a.StatusUpdatedAt,
		StatusUpdatedBy:  a.StatusUpdatedBy,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}

	if a.PictureOption != nil {
		option := string(*a.PictureOption)
		resp.PictureOption = &option
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}
