package closures

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-IDCardBooking/internal/api/handlers"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "некорректный диапазон дат"
	msgInvalidRemarks     = "некорректное замечание к закрытию"
)

type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/closures
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /closures - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("GET /closures - Invalid range: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRange)
			return
		}
		h.logger.Error("GET /closures - Failed to list closures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /closures - Closures retrieved successfully: count=%d", len(result.Closures))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Set PUT /api/v1/closures/{date}
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("PUT /closures/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req SetClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /closures/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetClosure(r.Context(), date, req.Remarks)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Warn("PUT /closures/{date} - Invalid data: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidRemarks)
			return
		}
		h.logger.Error("PUT /closures/{date} - Failed to set closure: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /closures/{date} - Office closed: date=%s", dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Clear DELETE /api/v1/closures/{date}
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /closures/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.ClearClosure(r.Context(), date); err != nil {
		h.logger.Error("DELETE /closures/{date} - Failed to clear closure: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /closures/{date} - Office reopened: date=%s", dateStr)
	handlers.RespondNoContent(w)
}
