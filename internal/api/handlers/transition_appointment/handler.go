package transition_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/api/middleware"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgRemarkRequired       = "для этого статуса нужно замечание"
	msgInvalidTransition    = "переход в этот статус запрещен"
	msgSlotFull             = "в слоте не осталось мест для восстановления записи"
	msgInvalidData          = "некорректный статус"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, requester))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, requester.UserID)
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, domain.ErrRemarkRequired):
			h.logger.Warn("PATCH /appointments/{id}/status - Remark required: appointment_id=%d, status=%s",
				appointmentID, req.Status)
			handlers.RespondDomainError(w, err, msgRemarkRequired)

		case errors.Is(err, domain.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondDomainError(w, err, msgInvalidTransition)

		case errors.Is(err, domain.ErrSlotFull):
			h.logger.Warn("PATCH /appointments/{id}/status - Slot full on reacquire: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgSlotFull)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid data: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidData)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, %s -> %s, staff_id=%d",
		appointmentID, result.PreviousStatus, result.Appointment.Status, requester.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
