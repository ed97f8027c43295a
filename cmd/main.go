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

	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getMyBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_my_bookings"
	getSlotSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_slot_settings"
	listNonWorkingDaysHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_non_working_days"
	markNonWorkingDayHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_non_working_day"
	unmarkNonWorkingDayHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/unmark_non_working_day"
	updateSlotSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_slot_settings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	nonWorkingDayRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/nonworkingday"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	serviceTicketRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/serviceticket"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	garageServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/garageservice"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	cancelBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	markNonWorkingDayUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/mark_non_working_day"
	unmarkNonWorkingDayUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/unmark_non_working_day"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиент GarageService
	garageClient := garageServiceClient.NewClient(
		cfg.GarageService.URL,
		time.Duration(cfg.GarageService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (GarageService=%s timeout=%ds)",
		cfg.GarageService.URL, cfg.GarageService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository          *slotRepo.Repository
		bookingRepository       *bookingRepo.Repository
		policyRepository        *policyRepo.Repository
		nonWorkingDayRepository *nonWorkingDayRepo.Repository
		serviceTicketRepository *serviceTicketRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		nonWorkingDayRepository = nonWorkingDayRepo.NewRepository(wrappedDB)
		serviceTicketRepository = serviceTicketRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		nonWorkingDayRepository = nonWorkingDayRepo.NewRepository(db)
		serviceTicketRepository = serviceTicketRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &getAvailabilityUC.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	settingsSvc := settingsService.NewService(policyRepository, nonWorkingDayRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		slotRepository,
		policyRepository,
		nonWorkingDayRepository,
		timeProvider,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		serviceTicketRepository,
		garageClient,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		timeProvider,
		log,
	)

	markNonWorkingDayUseCase := markNonWorkingDayUC.NewUseCase(
		nonWorkingDayRepository,
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)

	unmarkNonWorkingDayUseCase := unmarkNonWorkingDayUC.NewUseCase(
		nonWorkingDayRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getSlotSettings := getSlotSettingsHandler.NewHandler(settingsSvc, log)
	updateSlotSettings := updateSlotSettingsHandler.NewHandler(settingsSvc, log)
	listNonWorkingDays := listNonWorkingDaysHandler.NewHandler(settingsSvc, log)
	markNonWorkingDay := markNonWorkingDayHandler.NewHandler(markNonWorkingDayUseCase, log)
	unmarkNonWorkingDay := unmarkNonWorkingDayHandler.NewHandler(unmarkNonWorkingDayUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют заголовки аутентификации gateway
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// --- Слоты и бронирования ---
	// Доступность слотов на дату (с ленивой материализацией)
	api.HandleFunc("/slots/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	api.HandleFunc("/my_bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := api.PathPrefix("/admin").Subrouter()

	// Все бронирования с фильтром по периоду
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

	// Политика слотов
	admin.HandleFunc("/slot_settings", getSlotSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slot_settings", updateSlotSettings.Handle).Methods(http.MethodPost)

	// Нерабочие дни
	admin.HandleFunc("/non_working_days", listNonWorkingDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/non_working_days", markNonWorkingDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/non_working_days", unmarkNonWorkingDay.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
