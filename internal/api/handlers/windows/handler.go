package windows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/windows/models"
)

const (
	msgInvalidWindowID    = "некорректный ID окна записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные окна записи"
	msgInvalidActiveFlag  = "некорректное значение activeOnly"
	msgNotFound           = "окно записи не найдено"
)

type Handler struct {
	service WindowService
	logger  Logger
}

func NewHandler(service WindowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/windows
// Query params: activeOnly (опционально, по умолчанию false)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("activeOnly"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /windows - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActiveFlag)
			return
		}
		activeOnly = parsed
	}

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /windows - Failed to list windows: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /windows - Windows retrieved successfully: count=%d", len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/windows/{windowId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	windowID, ok := h.parseWindowID(w, r, "GET /windows/{id}")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), windowID)
	if err != nil {
		h.respondError(w, "GET /windows/{id}", windowID, err)
		return
	}

	h.logger.Info("GET /windows/{id} - Window retrieved successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/windows
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /windows", 0, err)
		return
	}

	h.logger.Info("POST /windows - Window created successfully: window_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/windows/{windowId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	windowID, ok := h.parseWindowID(w, r, "PUT /windows/{id}")
	if !ok {
		return
	}

	var req models.WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /windows/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), windowID, &req)
	if err != nil {
		h.respondError(w, "PUT /windows/{id}", windowID, err)
		return
	}

	h.logger.Info("PUT /windows/{id} - Window updated successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/windows/{windowId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	windowID, ok := h.parseWindowID(w, r, "DELETE /windows/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), windowID); err != nil {
		h.respondError(w, "DELETE /windows/{id}", windowID, err)
		return
	}

	h.logger.Info("DELETE /windows/{id} - Window deleted successfully: window_id=%d", windowID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseWindowID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	windowID, err := strconv.ParseInt(mux.Vars(r)["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid window ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return 0, false
	}
	return windowID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, windowID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrWindowNotFound):
		h.logger.Warn("%s - Window not found: window_id=%d", route, windowID)
		handlers.RespondDomainError(w, err, msgNotFound)

	case errors.Is(err, domain.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondDomainError(w, err, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: window_id=%d, error=%v", route, windowID, err)
		handlers.RespondInternalError(w)
	}
}
