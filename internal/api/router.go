package api

import (
	"net/http"

	"github.com/gorilla/mux"

	bookAppointmentHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/book_appointment"
	closuresHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/closures"
	getAppointmentHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/get_user_appointments"
	listAppointmentsHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/list_appointments"
	slotsHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/slots"
	transitionAppointmentHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/transition_appointment"
	windowsHandler "github.com/m04kA/SMC-IDCardBooking/internal/api/handlers/windows"
	"github.com/m04kA/SMC-IDCardBooking/internal/api/middleware"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	GetAvailableSlots     *getAvailableSlotsHandler.Handler
	BookAppointment       *bookAppointmentHandler.Handler
	GetAppointment        *getAppointmentHandler.Handler
	GetUserAppointments   *getUserAppointmentsHandler.Handler
	ListAppointments      *listAppointmentsHandler.Handler
	TransitionAppointment *transitionAppointmentHandler.Handler
	Closures              *closuresHandler.Handler
	Windows               *windowsHandler.Handler
	Slots                 *slotsHandler.Handler
}

// RouterOptions необязательные middleware
type RouterOptions struct {
	// BookingLimiter ограничивает создание записей; nil - без ограничения
	BookingLimiter *middleware.RateLimiter
	// Metrics middleware для всех маршрутов; nil - без метрик
	Metrics mux.MiddlewareFunc
}

// RegisterRoutes регистрирует маршруты /api/v1 на роутере
func RegisterRoutes(r *mux.Router, h *Handlers, opts RouterOptions) {
	if opts.Metrics != nil {
		r.Use(opts.Metrics)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId:[0-9]+}", h.Slots.Get).Methods(http.MethodGet)
	api.HandleFunc("/windows", h.Windows.List).Methods(http.MethodGet)
	api.HandleFunc("/windows/{windowId:[0-9]+}", h.Windows.Get).Methods(http.MethodGet)
	api.HandleFunc("/closures", h.Closures.List).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание записи, с ограничением частоты на пользователя
	var book http.Handler = http.HandlerFunc(h.BookAppointment.Handle)
	if opts.BookingLimiter != nil {
		book = opts.BookingLimiter.Middleware(book)
	}
	protected.Handle("/appointments", book).Methods(http.MethodPost)

	// Запись по ID (владелец или сотрудник)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", h.GetAppointment.Handle).Methods(http.MethodGet)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", h.GetUserAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (X-User-Role: staff или admin)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.Auth, middleware.RequireStaff)

	// --- Записи ---
	staff.HandleFunc("/appointments", h.ListAppointments.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{appointmentId}/status", h.TransitionAppointment.Handle).Methods(http.MethodPatch)

	// --- Закрытые даты ---
	staff.HandleFunc("/closures/{date}", h.Closures.Set).Methods(http.MethodPut)
	staff.HandleFunc("/closures/{date}", h.Closures.Clear).Methods(http.MethodDelete)

	// --- Окна записи ---
	staff.HandleFunc("/windows", h.Windows.Create).Methods(http.MethodPost)
	staff.HandleFunc("/windows/{windowId}", h.Windows.Update).Methods(http.MethodPut)
	staff.HandleFunc("/windows/{windowId}", h.Windows.Delete).Methods(http.MethodDelete)

	// --- Слоты ---
	staff.HandleFunc("/slots/generate", h.Slots.Generate).Methods(http.MethodPost)
	staff.HandleFunc("/slots/{slotId}/capacity", h.Slots.UpdateCapacity).Methods(http.MethodPatch)
	staff.HandleFunc("/slots/{slotId}", h.Slots.Delete).Methods(http.MethodDelete)
}
