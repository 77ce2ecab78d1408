package slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные параметры слотов"
	msgNotFound           = "слот не найден"
	msgSlotInUse          = "на слот есть записи, удаление невозможно"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Generate POST /api/v1/slots/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.GenerateSlots(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("POST /slots/generate - Invalid data: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidData)
			return
		}
		h.logger.Error("POST /slots/generate - Failed to generate slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/generate - Slots generated: created=%d, skipped=%d", len(result.Created), result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/slots/{slotId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.parseSlotID(w, r, "GET /slots/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), slotID)
	if err != nil {
		h.respondError(w, "GET /slots/{id}", slotID, err)
		return
	}

	h.logger.Info("GET /slots/{id} - Slot retrieved: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateCapacity PATCH /api/v1/slots/{slotId}/capacity
func (h *Handler) UpdateCapacity(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.parseSlotID(w, r, "PATCH /slots/{id}/capacity")
	if !ok {
		return
	}

	var req models.UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCapacity(r.Context(), slotID, req.Capacity)
	if err != nil {
		h.respondError(w, "PATCH /slots/{id}/capacity", slotID, err)
		return
	}

	h.logger.Info("PATCH /slots/{id}/capacity - Capacity updated: slot_id=%d, capacity=%d", slotID, result.Capacity)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID, ok := h.parseSlotID(w, r, "DELETE /slots/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		h.respondError(w, "DELETE /slots/{id}", slotID, err)
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted: slot_id=%d", slotID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseSlotID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid slot ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return 0, false
	}
	return slotID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, slotID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: slot_id=%d", route, slotID)
		handlers.RespondDomainError(w, err, msgNotFound)

	case errors.Is(err, domain.ErrSlotHasAppointments):
		h.logger.Warn("%s - Slot has appointments: slot_id=%d", route, slotID)
		handlers.RespondDomainError(w, err, msgSlotInUse)

	case errors.Is(err, domain.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondDomainError(w, err, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: slot_id=%d, error=%v", route, slotID, err)
		handlers.RespondInternalError(w)
	}
}
