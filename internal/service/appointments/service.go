package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Студент видит только свои записи, сотрудник - любые
func (s *Service) GetByID(ctx context.Context, id int64, requester domain.Requester) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, requester.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, domain.ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", domain.ErrInternal, err)
	}

	if !requester.CanAccessUser(appointment.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", requester.UserID, id)
		return nil, domain.ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	if !req.Requester.CanAccessUser(req.UserID) {
		s.logger.Warn("GetUserAppointments: user=%d is not allowed to see appointments of user=%d",
			req.Requester.UserID, req.UserID)
		return nil, domain.ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		parsed, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, err
		}
		status = &parsed
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListAppointments список записей для сотрудников с фильтрацией
// по периоду, статусу, услуге и слоту
func (s *Service) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !req.Requester.IsStaff() {
		s.logger.Warn("ListAppointments: user=%d is not staff", req.Requester.UserID)
		return nil, domain.ErrAccessDenied
	}

	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", domain.ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAppointments: invalid filter: %v", err)
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("ListAppointments: staff=%d fetched %d appointments", req.Requester.UserID, len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}
