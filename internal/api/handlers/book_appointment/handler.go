package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/api/middleware"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotFound       = "слот не найден"
	msgSlotFull           = "в слоте не осталось мест, выберите другое время"
	msgClosedDate         = "офис закрыт в выбранную дату"
	msgOutsideWindow      = "запись на эту услугу в выбранную дату не открыта"
	msgSlotInPast         = "нельзя записаться на прошедшую дату"
	msgInvalidData        = "некорректные данные записи"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondDomainError(w, err, msgSlotNotFound)

		case errors.Is(err, domain.ErrSlotFull):
			h.logger.Warn("POST /appointments - Slot full: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondDomainError(w, err, msgSlotFull)

		case errors.Is(err, domain.ErrClosedDate):
			h.logger.Warn("POST /appointments - Closed date: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondDomainError(w, err, msgClosedDate)

		case errors.Is(err, domain.ErrOutsideSchedulingWindow):
			h.logger.Warn("POST /appointments - Outside scheduling window: slot_id=%d, purpose=%s", req.SlotID, req.Purpose)
			handlers.RespondDomainError(w, err, msgOutsideWindow)

		case errors.Is(err, domain.ErrSlotInPast):
			h.logger.Warn("POST /appointments - Slot in past: slot_id=%d", req.SlotID)
			handlers.RespondDomainError(w, err, msgSlotInPast)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondDomainError(w, err, msgInvalidData)

		default:
			h.logger.Error("POST /appointments - Failed to book: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, slot_id=%d",
		result.ID, userID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
