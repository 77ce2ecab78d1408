package transition_appointment

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
)

// UseCase use case для смены статуса записи сотрудником
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotLedger      SlotLedger
	machine         *domain.StatusMachine
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotLedger SlotLedger,
	machine *domain.StatusMachine,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	if machine == nil {
		machine = domain.NewStatusMachine(nil)
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotLedger:      slotLedger,
		machine:         machine,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute меняет статус записи
// Строка записи блокируется до конца транзакции, поэтому проверка перехода,
// действие над местом в слоте и запись статуса атомарны для одной записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, status=%s, staff=%d",
		req.AppointmentID, req.Status, req.Requester.UserID)

	// 1. Валидация входных данных
	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		uc.metrics.ObserveTransition(req.Status, string(domain.KindOf(err)))
		return nil, err
	}

	remark := ""
	if req.Remarks != nil {
		remark = strings.TrimSpace(*req.Remarks)
	}

	now := uc.timeProvider.Now()
	var resp *Response

	// 2. Переход в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			return translateStorageError("get appointment", err)
		}

		previous := appointment.Status

		// 2.2. Переход разрешён и замечание есть, если оно нужно
		if err := uc.machine.Validate(previous, status, remark); err != nil {
			uc.logger.Warn("TransitionAppointment: appointment=%d %s -> %s rejected: %v",
				appointment.ID, previous, status, err)
			return err
		}

		change := domain.StatusChange{
			Status:    status,
			UpdatedBy: req.Requester.UserID,
			UpdatedAt: now,
		}
		// Пустое необязательное замечание сохраняет прежнее
		if remark != "" {
			change.Remarks = &remark
		}

		// 2.3. Действие над вместимостью слота
		effect := uc.machine.CapacityEffect(previous, status)
		switch effect {
		case domain.CapacityRelease:
			if err := uc.slotLedger.Release(txCtx, appointment.SlotID); err != nil {
				uc.logger.Error("TransitionAppointment: release failed for slot=%d: %v", appointment.SlotID, err)
				return translateStorageError("release", err)
			}
		case domain.CapacityReacquire:
			token, err := uc.slotLedger.Reserve(txCtx, appointment.SlotID)
			if err != nil {
				uc.logger.Warn("TransitionAppointment: cannot reacquire slot=%d for appointment=%d: %v",
					appointment.SlotID, appointment.ID, err)
				return translateStorageError("reserve", err)
			}
			change.ReservationToken = &token.Token
		}

		// 2.4. Новый статус с отметками кто/когда
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, change); err != nil {
			uc.logger.Error("TransitionAppointment: failed to update appointment=%d: %v", appointment.ID, err)
			return translateStorageError("update status", err)
		}

		appointment.Status = status
		appointment.StatusUpdatedAt = &change.UpdatedAt
		appointment.StatusUpdatedBy = &change.UpdatedBy
		if change.Remarks != nil {
			appointment.AdminRemarks = change.Remarks
		}
		if change.ReservationToken != nil {
			appointment.ReservationToken = *change.ReservationToken
		}

		resp = &Response{
			Appointment:    appointment,
			PreviousStatus: previous,
			CapacityEffect: effect,
		}
		return nil
	})

	if err != nil {
		uc.metrics.ObserveTransition(string(status), string(domain.KindOf(err)))
		return nil, err
	}
	uc.metrics.ObserveTransition(string(status), "success")

	a := resp.Appointment
	uc.logger.Info("TransitionAppointment: appointment=%d %s -> %s by staff=%d",
		a.ID, resp.PreviousStatus, a.Status, req.Requester.UserID)

	// 3. Уведомление после коммита, только если статус действительно изменился
	if resp.PreviousStatus != a.Status {
		previous := string(resp.PreviousStatus)
		uc.notifier.NotifyAsync(notificationservice.Notification{
			Event:           notificationservice.EventAppointmentStatusChanged,
			UserID:          a.UserID,
			AppointmentID:   a.ID,
			Purpose:         string(a.Purpose),
			Status:          string(a.Status),
			PreviousStatus:  &previous,
			Remarks:         a.AdminRemarks,
			AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
			StartTime:       a.StartTime.String(),
		})
	}

	return resp, nil
}
