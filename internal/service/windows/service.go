package windows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	windowRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/window"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/windows/models"
)

// Service политика окон записи
// Услуга доступна для записи на дату, только если её разрешает хотя бы одно активное окно
type Service struct {
	windowRepo WindowRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса окон записи
func NewService(windowRepo WindowRepository, logger Logger) *Service {
	return &Service{
		windowRepo: windowRepo,
		logger:     logger,
	}
}

// IsBookable проверяет, открыта ли запись на услугу в указанную дату
func (s *Service) IsBookable(ctx context.Context, date time.Time, purpose domain.Purpose) (bool, error) {
	windows, err := s.windowRepo.ListActiveForDate(ctx, date)
	if err != nil {
		s.logger.Error("IsBookable: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsBookable - repository error: %w", domain.ErrInternal, err)
	}

	return domain.IsBookable(windows, date, purpose), nil
}

// BookablePurposes возвращает услуги, на которые открыта запись в указанную дату
func (s *Service) BookablePurposes(ctx context.Context, date time.Time) ([]domain.Purpose, error) {
	windows, err := s.windowRepo.ListActiveForDate(ctx, date)
	if err != nil {
		s.logger.Error("BookablePurposes: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: BookablePurposes - repository error: %w", domain.ErrInternal, err)
	}

	purposes := make([]domain.Purpose, 0, len(domain.AllPurposes))
	for _, purpose := range domain.AllPurposes {
		if domain.IsBookable(windows, date, purpose) {
			purposes = append(purposes, purpose)
		}
	}

	return purposes, nil
}

// Create создает окно записи
func (s *Service) Create(ctx context.Context, req *models.WindowRequest) (*models.WindowResponse, error) {
	window, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	window.Name = strings.TrimSpace(window.Name)

	created, err := s.windowRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("Create: window id=%d '%s' %s..%s purpose=%s",
		created.ID, created.Name, created.StartDate.Format(domain.DateFormat), created.EndDate.Format(domain.DateFormat), created.Purpose)
	return models.FromDomainWindow(created), nil
}

// Update полностью заменяет окно записи
func (s *Service) Update(ctx context.Context, id int64, req *models.WindowRequest) (*models.WindowResponse, error) {
	window, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Update: validation failed for window id=%d: %v", id, err)
		return nil, err
	}
	window.ID = id
	window.Name = strings.TrimSpace(window.Name)

	updated, err := s.windowRepo.Update(ctx, window)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Update: window id=%d not found", id)
			return nil, domain.ErrWindowNotFound
		}
		s.logger.Error("Update: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("Update: window id=%d updated", id)
	return models.FromDomainWindow(updated), nil
}

// GetByID получает окно записи по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WindowResponse, error) {
	window, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			return nil, domain.ErrWindowNotFound
		}
		s.logger.Error("GetByID: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainWindow(window), nil
}

// List возвращает окна записи
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.WindowListResponse, error) {
	windows, err := s.windowRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainWindowList(windows), nil
}

// Delete удаляет окно записи
// Существующие записи не затрагиваются, закрывается только приём новых
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.windowRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return domain.ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("Delete: window id=%d deleted", id)
	return nil
}
