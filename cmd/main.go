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

	addBlackoutHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/add_blackout"
	cancelBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/cancel_booking"
	captainCancelBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/captain_cancel_booking"
	completeBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/create_booking"
	decideModificationHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/decide_modification"
	getAvailableSlotsHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_booking"
	getBookingLogHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_booking_log"
	getCaptainBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_captain_booking"
	getCaptainBookingsHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_captain_bookings"
	getCaptainSettingsHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_captain_settings"
	getRangeAvailabilityHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_range_availability"
	getScheduleHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/get_schedule"
	listModificationsHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/list_modifications"
	noShowBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/no_show_booking"
	paymentWebhookHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/payment_webhook"
	removeBlackoutHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/remove_blackout"
	requestModificationHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/request_modification"
	rescheduleBookingHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/reschedule_booking"
	runSweepHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/run_sweep"
	updateCaptainSettingsHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/update_captain_settings"
	updateScheduleHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/update_schedule"
	weatherHoldHandler "github.com/helmline/Charter-BookingService/internal/api/handlers/weather_hold"
	"github.com/helmline/Charter-BookingService/internal/api/middleware"
	"github.com/helmline/Charter-BookingService/internal/config"
	availabilityRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	bookingLogRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/bookinglog"
	modificationRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/modification"
	tripTypeRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/triptype"
	"github.com/helmline/Charter-BookingService/internal/infra/tokenstore"
	mailerClient "github.com/helmline/Charter-BookingService/internal/integrations/mailer"
	paymentsClient "github.com/helmline/Charter-BookingService/internal/integrations/payments"
	weatherClient "github.com/helmline/Charter-BookingService/internal/integrations/weather"
	availabilityService "github.com/helmline/Charter-BookingService/internal/service/availability"
	bookingsService "github.com/helmline/Charter-BookingService/internal/service/bookings"
	modificationsService "github.com/helmline/Charter-BookingService/internal/service/modifications"
	sweeperService "github.com/helmline/Charter-BookingService/internal/service/sweeper"
	createBookingUC "github.com/helmline/Charter-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/helmline/Charter-BookingService/internal/usecase/get_available_slots"
	getRangeAvailabilityUC "github.com/helmline/Charter-BookingService/internal/usecase/get_range_availability"
	"github.com/helmline/Charter-BookingService/pkg/dbmetrics"
	"github.com/helmline/Charter-BookingService/pkg/logger"
	"github.com/helmline/Charter-BookingService/pkg/metrics"
	"github.com/helmline/Charter-BookingService/pkg/simpletxmanager"
	"github.com/helmline/Charter-BookingService/pkg/txmanager"
)

// Management-токен живет дольше любого горизонта бронирования:
// гостю может понадобиться отмена за день до поездки через год
const managementTokenTTL = 400 * 24 * time.Hour

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

	log.Info("Starting Charter-BookingService...")
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

	// Подключаемся к Redis (management-токены и rate limiting)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	tokenStore := tokenstore.NewStore(redisClient, managementTokenTTL)

	// Инициализируем интеграционных клиентов
	payments := paymentsClient.NewClient(
		cfg.Payments.KeyID,
		cfg.Payments.KeySecret,
		cfg.Payments.WebhookSecret,
		cfg.Payments.Currency,
		log,
	)
	weather := weatherClient.NewClient(
		cfg.Weather.URL,
		cfg.Weather.APIKey,
		time.Duration(cfg.Weather.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewMailer(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
		log,
	)
	log.Info("Integration clients initialized (weather=%s timeout=%ds, mail=%s:%d)",
		cfg.Weather.URL, cfg.Weather.Timeout, cfg.Mail.Host, cfg.Mail.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		tripTypeRepository     *tripTypeRepo.Repository
		modificationRepository *modificationRepo.Repository
		bookingLogRepository   *bookingLogRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		tripTypeRepository = tripTypeRepo.NewRepository(wrappedDB)
		modificationRepository = modificationRepo.NewRepository(wrappedDB)
		bookingLogRepository = bookingLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		tripTypeRepository = tripTypeRepo.NewRepository(db)
		modificationRepository = modificationRepo.NewRepository(db)
		bookingLogRepository = bookingLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		tripTypeRepository,
		bookingLogRepository,
		payments,
		weather,
		mailer,
		txMgr,
		log,
	)
	modificationSvc := modificationsService.NewService(
		bookingRepository,
		modificationRepository,
		availabilityRepository,
		tripTypeRepository,
		bookingLogRepository,
		mailer,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		tripTypeRepository,
		txMgr,
		log,
	)
	sweeperSvc := sweeperService.NewService(
		bookingRepository,
		bookingLogRepository,
		mailer,
		txMgr,
		time.Duration(cfg.Jobs.ReminderHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		tripTypeRepository,
		bookingLogRepository,
		tokenStore,
		payments,
		mailer,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		tripTypeRepository,
		log,
	)
	getRangeAvailabilityUseCase := getRangeAvailabilityUC.NewUseCase(
		availabilityRepository,
		tripTypeRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getRangeAvailability := getRangeAvailabilityHandler.NewHandler(getRangeAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(tokenStore, bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(tokenStore, bookingSvc, log)
	requestModification := requestModificationHandler.NewHandler(tokenStore, modificationSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(payments, bookingSvc, log)

	getCaptainBookings := getCaptainBookingsHandler.NewHandler(bookingSvc, log)
	getCaptainBooking := getCaptainBookingHandler.NewHandler(bookingSvc, log)
	getBookingLog := getBookingLogHandler.NewHandler(bookingSvc, log)
	captainCancelBooking := captainCancelBookingHandler.NewHandler(bookingSvc, log)
	weatherHold := weatherHoldHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	noShowBooking := noShowBookingHandler.NewHandler(bookingSvc, log)
	listModifications := listModificationsHandler.NewHandler(modificationSvc, log)
	decideModification := decideModificationHandler.NewHandler(modificationSvc, log)
	getSchedule := getScheduleHandler.NewHandler(availabilitySvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(availabilitySvc, log)
	addBlackout := addBlackoutHandler.NewHandler(availabilitySvc, log)
	removeBlackout := removeBlackoutHandler.NewHandler(availabilitySvc, log)
	getCaptainSettings := getCaptainSettingsHandler.NewHandler(availabilitySvc, log)
	updateCaptainSettings := updateCaptainSettingsHandler.NewHandler(availabilitySvc, log)

	runSweep := runSweepHandler.NewHandler(sweeperSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (гостевые, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	if cfg.RateLimit.Enabled {
		rateLimit, err := middleware.NewRateLimit(redisClient, cfg.RateLimit.Public)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		public.Use(rateLimit)
		log.Info("Rate limiting enabled for public routes (%s)", cfg.RateLimit.Public)
	}

	// Слоты на день и календарный обзор доступности
	public.HandleFunc("/captains/{captainId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/captains/{captainId}/availability", getRangeAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Управление бронированием по management-токену из письма
	public.HandleFunc("/manage/{token}", getBooking.Handle).Methods(http.MethodGet)
	public.HandleFunc("/manage/{token}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/manage/{token}/modifications", requestModification.Handle).Methods(http.MethodPost)

	// Webhook платежного шлюза (аутентификация по подписи)
	api.HandleFunc("/webhooks/payment", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// CAPTAIN ROUTES (требуют X-Captain-ID header)
	// ============================================================

	captain := api.PathPrefix("/captain").Subrouter()
	captain.Use(middleware.Auth)

	// --- Бронирования ---
	captain.HandleFunc("/bookings", getCaptainBookings.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/bookings/{bookingId}", getCaptainBooking.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/bookings/{bookingId}/log", getBookingLog.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/bookings/{bookingId}/cancel", captainCancelBooking.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/bookings/{bookingId}/weather-hold", weatherHold.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/bookings/{bookingId}/no-show", noShowBooking.Handle).Methods(http.MethodPost)

	// --- Запросы на изменение ---
	captain.HandleFunc("/modifications", listModifications.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/modifications/{requestId}/approve", decideModification.HandleApprove).Methods(http.MethodPost)
	captain.HandleFunc("/modifications/{requestId}/reject", decideModification.HandleReject).Methods(http.MethodPost)

	// --- Расписание и настройки ---
	captain.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	captain.HandleFunc("/blackouts", addBlackout.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/blackouts/{date}", removeBlackout.Handle).Methods(http.MethodDelete)
	captain.HandleFunc("/settings", getCaptainSettings.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/settings", updateCaptainSettings.Handle).Methods(http.MethodPut)

	// ============================================================
	// INTERNAL JOB ROUTES (требуют X-Job-Token header)
	// ============================================================

	jobs := r.PathPrefix("/internal/jobs").Subrouter()
	jobs.Use(middleware.JobAuth(cfg.Jobs.Secret))

	jobs.HandleFunc("/sweep-expired", runSweep.HandleSweepExpired).Methods(http.MethodPost)
	jobs.HandleFunc("/send-reminders", runSweep.HandleSendReminders).Methods(http.MethodPost)

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
