package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

// AppointmentStatus статус записи в процессе выдачи карты
type AppointmentStatus string

const (
	StatusPendingApproval AppointmentStatus = "pending-approval"
	StatusOnHold          AppointmentStatus = "on-hold"
	StatusForPrinting     AppointmentStatus = "for-printing"
	StatusToClaim         AppointmentStatus = "to-claim"
	StatusConfirmed       AppointmentStatus = "confirmed"
	StatusDeclined        AppointmentStatus = "declined"
)

// AllStatuses все допустимые статусы
var AllStatuses = []AppointmentStatus{
	StatusPendingApproval,
	StatusOnHold,
	StatusForPrinting,
	StatusToClaim,
	StatusConfirmed,
	StatusDeclined,
}

// ParseStatus разбирает статус; неизвестные строки не представимы в модели
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// HoldsCapacity true, если запись в этом статусе удерживает место в слоте
func (s AppointmentStatus) HoldsCapacity() bool {
	return s != StatusDeclined
}

// IsTerminal true для конечных статусов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusDeclined
}

// Appointment запись студента на слот
type Appointment struct {
	ID               int64
	UserID           int64
	SlotID           int64
	Purpose          Purpose
	PictureOption    *PictureOption // только для RENEWAL
	Notes            *string
	Status           AppointmentStatus
	AdminRemarks     *string
	ReservationToken uuid.UUID

	// Денормализованные данные слота для истории
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString

	StatusUpdatedAt *time.Time
	StatusUpdatedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy true, если запись принадлежит пользователю
func (a *Appointment) IsOwnedBy(userID int64) bool {
	return a.UserID == userID
}

// StatusChange данные для записи нового статуса
type StatusChange struct {
	Status           AppointmentStatus
	Remarks          *string // nil - оставить прежние замечания
	UpdatedBy        int64
	UpdatedAt        time.Time
	ReservationToken *uuid.UUID // новый токен при повторном захвате места
}

// AppointmentsFilter фильтр для списка записей (для сотрудников)
type AppointmentsFilter struct {
	UserID   *int64
	SlotID   *int64
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *AppointmentStatus
	Purpose  *Purpose
}
