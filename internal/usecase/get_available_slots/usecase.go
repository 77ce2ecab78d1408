package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	slotLedger   SlotLedger
	closureGuard ClosureGuard
	windowPolicy WindowPolicy
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotLedger SlotLedger,
	closureGuard ClosureGuard,
	windowPolicy WindowPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotLedger:   slotLedger,
		closureGuard: closureGuard,
		windowPolicy: windowPolicy,
		logger:       logger,
	}
}

// Execute возвращает слоты, на которые сейчас можно записаться
// Закрытая дата даёт пустой список с признаком Closed; остальные слоты фильтруются окнами записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, purpose=%v", req.Date.Format(domain.DateFormat), req.Purpose)

	// 1. Валидация входных данных
	purpose, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{
		Date:  date,
		Slots: []*domain.Slot{},
	}

	// 2. Закрытая дата перекрывает всё остальное
	closure, err := uc.closureGuard.GetClosure(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check closure: %v", err)
		return nil, err
	}
	if closure != nil {
		uc.logger.Info("GetAvailableSlots: office is closed on %s", date.Format(domain.DateFormat))
		resp.Closed = true
		resp.ClosureRemarks = &closure.Remarks
		return resp, nil
	}

	// 3. Услуги, на которые открыта запись
	purposes, err := uc.windowPolicy.BookablePurposes(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookable purposes: %v", err)
		return nil, err
	}

	bookable := make(map[domain.Purpose]bool, len(purposes))
	for _, p := range purposes {
		bookable[p] = true
	}

	if len(bookable) == 0 || (purpose != nil && !bookable[*purpose]) {
		uc.logger.Info("GetAvailableSlots: no scheduling window is open on %s", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 4. Слоты из реестра, только для открытых услуг
	slots, err := uc.slotLedger.ListForDate(ctx, date, purpose)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %w", domain.ErrInternal, err)
	}

	for _, slot := range slots {
		if bookable[slot.Purpose] {
			resp.Slots = append(resp.Slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: returning %d slots for %s", len(resp.Slots), date.Format(domain.DateFormat))
	return resp, nil
}
