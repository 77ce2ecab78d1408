package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-IDCardBooking/internal/api"
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
	"github.com/m04kA/SMC-IDCardBooking/internal/config"
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/appointment"
	closureRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/closure"
	slotRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/slot"
	windowRepo "github.com/m04kA/SMC-IDCardBooking/internal/infra/storage/window"
	notificationServiceClient "github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
	appointmentsService "github.com/m04kA/SMC-IDCardBooking/internal/service/appointments"
	closuresService "github.com/m04kA/SMC-IDCardBooking/internal/service/closures"
	slotsService "github.com/m04kA/SMC-IDCardBooking/internal/service/slots"
	windowsService "github.com/m04kA/SMC-IDCardBooking/internal/service/windows"
	bookAppointmentUC "github.com/m04kA/SMC-IDCardBooking/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-IDCardBooking/internal/usecase/get_available_slots"
	transitionAppointmentUC "github.com/m04kA/SMC-IDCardBooking/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-IDCardBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/logger"
	"github.com/m04kA/SMC-IDCardBooking/pkg/metrics"
	"github.com/m04kA/SMC-IDCardBooking/pkg/txmanager"
)

// dbHandle то, что нужно репозиториям и менеджеру транзакций:
// *sql.DB напрямую или обёртка с метриками
type dbHandle interface {
	dbmetrics.DBExecutor
	txmanager.Beginner
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-IDCardBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	transitions, err := cfg.Workflow.TransitionTable()
	if err != nil {
		log.Fatal("Invalid workflow transitions: %v", err)
	}
	statusMachine := domain.NewStatusMachine(transitions)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var conn dbHandle = db
	if cfg.Metrics.Enabled {
		conn = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем интеграционных клиентов
	notifier := notificationServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	if notifier.Enabled() {
		log.Info("Notification client initialized (url=%s timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	} else {
		log.Warn("Notification service URL is empty, notifications are disabled")
	}

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(conn)
	appointmentRepository := appointmentRepo.NewRepository(conn)
	closureRepository := closureRepo.NewRepository(conn)
	windowRepository := windowRepo.NewRepository(conn)
	txMgr := txmanager.NewTransactionManager(conn)

	// Инициализируем сервисы
	closureSvc := closuresService.NewService(closureRepository, log)
	windowSvc := windowsService.NewService(windowRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	slotSvc := slotsService.NewService(slotRepository, txMgr, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		closureSvc,
		windowSvc,
		notifier,
		metricsCollector,
		txMgr,
		log,
	).WithTimeProvider(&bookAppointmentUC.RealTimeProvider{Location: location})

	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		statusMachine,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		closureSvc,
		windowSvc,
		log,
	)

	// Ограничение частоты записи через Redis
	var bookingLimiter *middleware.RateLimiter
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			if !cfg.RateLimit.FailOpen {
				cancelPing()
				log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
			}
			log.Warn("Redis at %s is unavailable, rate limiter will fail open: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		bookingLimiter = middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.Bookings,
			cfg.RateLimit.Window(),
			cfg.RateLimit.Prefix,
			cfg.RateLimit.FailOpen,
			log,
		)
		log.Info("Booking rate limit enabled (%d per %s)", cfg.RateLimit.Bookings, cfg.RateLimit.Window())
	}

	// Инициализируем handlers
	handlers := &api.Handlers{
		GetAvailableSlots:     getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		BookAppointment:       bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log),
		GetAppointment:        getAppointmentHandler.NewHandler(appointmentSvc, log),
		GetUserAppointments:   getUserAppointmentsHandler.NewHandler(appointmentSvc, log),
		ListAppointments:      listAppointmentsHandler.NewHandler(appointmentSvc, log),
		TransitionAppointment: transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log),
		Closures:              closuresHandler.NewHandler(closureSvc, log),
		Windows:               windowsHandler.NewHandler(windowSvc, log),
		Slots:                 slotsHandler.NewHandler(slotSvc, log),
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	opts := api.RouterOptions{BookingLimiter: bookingLimiter}
	if cfg.Metrics.Enabled {
		opts.Metrics = middleware.MetricsMiddleware(metricsCollector)
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api.RegisterRoutes(r, handlers, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений, поставленных в очередь до остановки
	notifier.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
