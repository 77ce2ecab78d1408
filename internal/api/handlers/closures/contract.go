package closures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/service/closures/models"
)

type ClosureService interface {
	SetClosure(ctx context.Context, date time.Time, remarks string) (*models.ClosureResponse, error)
	ClearClosure(ctx context.Context, date time.Time) error
	List(ctx context.Context, from, to *time.Time) (*models.ClosureListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
