package book_appointment

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
)

// UseCase use case для записи студента на слот
type UseCase struct {
	slotLedger      SlotLedger
	appointmentRepo AppointmentRepository
	closureGuard    ClosureGuard
	windowPolicy    WindowPolicy
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotLedger SlotLedger,
	appointmentRepo AppointmentRepository,
	closureGuard ClosureGuard,
	windowPolicy WindowPolicy,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotLedger:      slotLedger,
		appointmentRepo: appointmentRepo,
		closureGuard:    closureGuard,
		windowPolicy:    windowPolicy,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет часы: часовой пояс офиса в production, фиксированное время в тестах
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запись на слот
// Все проверки и захват места выполняются в одной сериализуемой транзакции:
// закрытие даты или окна записи, сделанное до коммита, не пропустит запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, slot=%d, purpose=%s", req.UserID, req.SlotID, req.Purpose)

	// 1. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		uc.observe(err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе офиса
	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Проверки и захват места в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слот
		slot, err := uc.slotLedger.GetByID(txCtx, req.SlotID)
		if err != nil {
			return translateLedgerError("get slot", err)
		}

		// 3.2. Услуга должна совпадать со слотом
		if slot.Purpose != input.purpose {
			uc.logger.Warn("BookAppointment: purpose=%s does not match slot id=%d purpose=%s",
				input.purpose, slot.ID, slot.Purpose)
			return ErrPurposeMismatch
		}

		// 3.3. Слот не в прошлом
		if isDateInPast(slot.Date, now) {
			uc.logger.Warn("BookAppointment: slot id=%d date=%s is in the past", slot.ID, slot.Date.Format(domain.DateFormat))
			return domain.ErrSlotInPast
		}

		// 3.4. Дата не закрыта
		closed, err := uc.closureGuard.IsClosed(txCtx, slot.Date)
		if err != nil {
			return err
		}
		if closed {
			uc.logger.Warn("BookAppointment: office is closed on %s", slot.Date.Format(domain.DateFormat))
			return domain.ErrClosedDate
		}

		// 3.5. Запись на услугу открыта окном
		bookable, err := uc.windowPolicy.IsBookable(txCtx, slot.Date, slot.Purpose)
		if err != nil {
			return err
		}
		if !bookable {
			uc.logger.Warn("BookAppointment: no scheduling window for purpose=%s on %s",
				slot.Purpose, slot.Date.Format(domain.DateFormat))
			return domain.ErrOutsideSchedulingWindow
		}

		// 3.6. Атомарный захват места
		token, err := uc.slotLedger.Reserve(txCtx, slot.ID)
		if err != nil {
			uc.logger.Warn("BookAppointment: reserve failed for slot id=%d: %v", slot.ID, err)
			return translateLedgerError("reserve", err)
		}

		// 3.7. Запись с денормализацией данных слота
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:           req.UserID,
			SlotID:           slot.ID,
			Purpose:          input.purpose,
			PictureOption:    input.pictureOption,
			Notes:            input.notes,
			Status:           domain.StatusPendingApproval,
			ReservationToken: token.Token,
			AppointmentDate:  slot.Date,
			StartTime:        slot.StartTime,
			EndTime:          slot.EndTime,
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", domain.ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.observe(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d for user=%d in slot=%d", result.ID, result.UserID, result.SlotID)

	// 4. Уведомление после коммита
	uc.notifier.NotifyAsync(notificationservice.Notification{
		Event:           notificationservice.EventAppointmentBooked,
		UserID:          result.UserID,
		AppointmentID:   result.ID,
		Purpose:         string(result.Purpose),
		Status:          string(result.Status),
		AppointmentDate: result.AppointmentDate.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
	})

	return fromDomain(result), nil
}

func (uc *UseCase) observe(err error) {
	if err == nil {
		uc.metrics.ObserveReservation("success")
		return
	}
	uc.metrics.ObserveReservation(string(domain.KindOf(err)))
}
