package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id int64, requester domain.Requester) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
