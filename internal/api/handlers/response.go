package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondNoContent отправляет 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку без доменного вида
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondKindError отправляет ошибку с видом из доменной таксономии
func RespondKindError(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Kind: string(kind), Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondKindError(w, http.StatusBadRequest, domain.KindInvalidInput, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondKindError(w, http.StatusForbidden, domain.KindAccessDenied, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondKindError(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// StatusForKind HTTP код для вида доменной ошибки
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindSlotNotFound, domain.KindAppointmentNotFound, domain.KindWindowNotFound:
		return http.StatusNotFound
	case domain.KindSlotFull, domain.KindSlotHasAppointments:
		return http.StatusConflict
	case domain.KindClosedDate, domain.KindOutsideSchedulingWindow, domain.KindSlotInPast:
		return http.StatusUnprocessableEntity
	case domain.KindRemarkRequired, domain.KindInvalidStatusTransition, domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отправляет доменную ошибку с кодом по её виду
// Для Internal сообщение заменяется общим, детали остаются в логах
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		RespondInternalError(w)
		return
	}
	RespondKindError(w, StatusForKind(kind), kind, message)
}

// DecodeJSON читает тело запроса и проверяет теги validate
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return err
	}

	return ValidateStruct(v)
}

// ValidateStruct проверяет структуру по тегам validate
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("field %s failed on '%s'", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}
