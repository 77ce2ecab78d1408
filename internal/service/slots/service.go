package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/slots/models"
)

// Service администрирование слотов: генерация, вместимость, удаление
// Счётчик занятых мест здесь не меняется
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GenerateSlots создает слоты на каждый день периода
// Уже существующие слоты (та же дата, время и услуга) пропускаются
func (s *Service) GenerateSlots(ctx context.Context, req *models.GenerateSlotsRequest) (*models.GenerateSlotsResponse, error) {
	s.logger.Info("GenerateSlots: %s..%s %s-%s every %d min, capacity=%d, purpose=%s, skipWeekends=%t",
		req.DateFrom, req.DateTo, req.OpenTime, req.CloseTime, req.DurationMinutes, req.Capacity, req.Purpose, req.SkipWeekends)

	plan, err := buildPlan(
		req.DateFrom, req.DateTo, req.OpenTime, req.CloseTime,
		req.DurationMinutes, req.Capacity, req.Purpose, req.SkipWeekends,
	)
	if err != nil {
		s.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &models.GenerateSlotsResponse{
		Created: make([]models.SlotResponse, 0, plan.size()),
	}

	// Генерация одним пакетом: либо все слоты, либо ни одного
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, date := range plan.dates {
			for _, r := range plan.ranges {
				for _, purpose := range plan.purposes {
					created, err := s.slotRepo.Create(txCtx, &domain.Slot{
						Date:      date,
						StartTime: r.start,
						EndTime:   r.end,
						Purpose:   purpose,
						Capacity:  plan.capacity,
					})
					if errors.Is(err, slotRepo.ErrDuplicateSlot) {
						resp.Skipped++
						continue
					}
					if err != nil {
						return fmt.Errorf("%w: GenerateSlots - create slot: %w", domain.ErrInternal, err)
					}
					resp.Created = append(resp.Created, *models.FromDomainSlot(created))
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("GenerateSlots: %v", err)
		return nil, err
	}

	s.logger.Info("GenerateSlots: created=%d, skipped=%d", len(resp.Created), resp.Skipped)
	return resp, nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, domain.ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// UpdateCapacity меняет вместимость слота
// Новая вместимость не может быть меньше числа уже занятых мест
func (s *Service) UpdateCapacity(ctx context.Context, id int64, capacity int) (*models.SlotResponse, error) {
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			domain.ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	slot, err := s.slotRepo.UpdateCapacity(ctx, id, capacity)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("UpdateCapacity: slot id=%d not found", id)
			return nil, domain.ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrCapacityBelowBooked):
			s.logger.Warn("UpdateCapacity: capacity=%d is below booked count for slot id=%d", capacity, id)
			return nil, fmt.Errorf("%w: capacity is below the number of booked appointments", domain.ErrInvalidInput)
		}
		s.logger.Error("UpdateCapacity: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateCapacity - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("UpdateCapacity: slot id=%d capacity=%d booked=%d", id, slot.Capacity, slot.BookedCount)
	return models.FromDomainSlot(slot), nil
}

// DeleteSlot удаляет слот, на который нет ни одной записи
func (s *Service) DeleteSlot(ctx context.Context, id int64) error {
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("DeleteSlot: slot id=%d not found", id)
			return domain.ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotInUse):
			s.logger.Warn("DeleteSlot: slot id=%d has appointments", id)
			return domain.ErrSlotHasAppointments
		}
		s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSlot - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("DeleteSlot: slot id=%d deleted", id)
	return nil
}
