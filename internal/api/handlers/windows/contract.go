package windows

import (
	"context"

	"github.com/m04kA/SMC-IDCardBooking/internal/service/windows/models"
)

type WindowService interface {
	Create(ctx context.Context, req *models.WindowRequest) (*models.WindowResponse, error)
	Update(ctx context.Context, id int64, req *models.WindowRequest) (*models.WindowResponse, error)
	GetByID(ctx context.Context, id int64) (*models.WindowResponse, error)
	List(ctx context.Context, activeOnly bool) (*models.WindowListResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
