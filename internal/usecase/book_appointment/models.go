package book_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	UserID        int64   // ID студента
	SlotID        int64   // ID слота
	Purpose       string  // Услуга: NEW_ID, RENEWAL, LOST_REPLACEMENT
	PictureOption *string // Только для RENEWAL: NEW_PICTURE или KEEP_PICTURE
	Notes         *string // Комментарий студента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64
	UserID           int64
	SlotID           int64
	Purpose          domain.Purpose
	PictureOption    *domain.PictureOption
	Notes            *string
	Status           domain.AppointmentStatus
	ReservationToken uuid.UUID

	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:               a.ID,
		UserID:           a.UserID,
		SlotID:           a.SlotID,
		Purpose:          a.Purpose,
		PictureOption:    a.PictureOption,
		Notes:            a.Notes,
		Status:           a.Status,
		ReservationToken: a.ReservationToken,
		AppointmentDate:  a.AppointmentDate,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// ToDomain возвращает запись как domain модель
func (r *Response) ToDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:               r.ID,
		UserID:           r.UserID,
		SlotID:           r.SlotID,
		Purpose:          r.Purpose,
		PictureOption:    r.PictureOption,
		Notes:            r.Notes,
		Status:           r.Status,
		ReservationToken: r.ReservationToken,
		AppointmentDate:  r.AppointmentDate,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
