package closures

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	closureRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/closure"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/closures/models"
)

// Service охраняет календарь офиса: закрытая дата запрещает новые записи
// Уже существующие записи на закрытую дату не отменяются
type Service struct {
	closureRepo ClosureRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса закрытых дат
func NewService(closureRepo ClosureRepository, logger Logger) *Service {
	return &Service{
		closureRepo: closureRepo,
		logger:      logger,
	}
}

// IsClosed проверяет, закрыт ли офис в указанную дату
func (s *Service) IsClosed(ctx context.Context, date time.Time) (bool, error) {
	closed, err := s.closureRepo.IsClosed(ctx, date)
	if err != nil {
		s.logger.Error("IsClosed: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsClosed - repository error: %w", domain.ErrInternal, err)
	}
	return closed, nil
}

// GetClosure возвращает закрытие на дату или nil, если офис открыт
func (s *Service) GetClosure(ctx context.Context, date time.Time) (*domain.CalendarClosure, error) {
	closure, err := s.closureRepo.GetByDate(ctx, date)
	if errors.Is(err, closureRepo.ErrClosureNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("GetClosure: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetClosure - repository error: %w", domain.ErrInternal, err)
	}
	return closure, nil
}

// SetClosure закрывает дату; повторный вызов заменяет замечание
// Замечание необязательно, пустое тоже закрывает дату
func (s *Service) SetClosure(ctx context.Context, date time.Time, remarks string) (*models.ClosureResponse, error) {
	remarks = strings.TrimSpace(remarks)
	if len(remarks) > domain.MaxRemarksLength {
		return nil, fmt.Errorf("%w: remarks are too long", domain.ErrInvalidInput)
	}

	s.logger.Info("SetClosure: closing date=%s", date.Format(domain.DateFormat))

	closure, err := s.closureRepo.Upsert(ctx, &domain.CalendarClosure{
		Date:    domain.DateOnly(date),
		Remarks: remarks,
	})
	if err != nil {
		s.logger.Error("SetClosure: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: SetClosure - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainClosure(closure), nil
}

// ClearClosure открывает дату. Для открытой даты ничего не делает
func (s *Service) ClearClosure(ctx context.Context, date time.Time) error {
	deleted, err := s.closureRepo.Delete(ctx, date)
	if err != nil {
		s.logger.Error("ClearClosure: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: ClearClosure - repository error: %w", domain.ErrInternal, err)
	}

	if deleted {
		s.logger.Info("ClearClosure: date=%s reopened", date.Format(domain.DateFormat))
	}
	return nil
}

// List возвращает закрытые даты в диапазоне
func (s *Service) List(ctx context.Context, from, to *time.Time) (*models.ClosureListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", domain.ErrInvalidInput)
	}

	closures, err := s.closureRepo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainClosureList(closures), nil
}
