package slots

import (
	"context"

	"github.com/m04kA/SMC-IDCardBooking/internal/service/slots/models"
)

type SlotService interface {
	GenerateSlots(ctx context.Context, req *models.GenerateSlotsRequest) (*models.GenerateSlotsResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SlotResponse, error)
	UpdateCapacity(ctx context.Context, id int64, capacity int) (*models.SlotResponse, error)
	DeleteSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
