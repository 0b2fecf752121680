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
	"golang.org/x/time/rate"

	adminLoginHandler "github.com/m04kA/studio-booking/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/m04kA/studio-booking/internal/api/handlers/admin_logout"
	createAppointmentHandler "github.com/m04kA/studio-booking/internal/api/handlers/create_appointment"
	createBlackoutHandler "github.com/m04kA/studio-booking/internal/api/handlers/create_blackout"
	createServiceHandler "github.com/m04kA/studio-booking/internal/api/handlers/create_service"
	createTestimonialHandler "github.com/m04kA/studio-booking/internal/api/handlers/create_testimonial"
	deleteBlackoutHandler "github.com/m04kA/studio-booking/internal/api/handlers/delete_blackout"
	deleteServiceHandler "github.com/m04kA/studio-booking/internal/api/handlers/delete_service"
	deleteTestimonialHandler "github.com/m04kA/studio-booking/internal/api/handlers/delete_testimonial"
	getAvailableSlotsHandler "github.com/m04kA/studio-booking/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/m04kA/studio-booking/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/studio-booking/internal/api/handlers/list_appointments"
	listBlackoutsHandler "github.com/m04kA/studio-booking/internal/api/handlers/list_blackouts"
	listServicesHandler "github.com/m04kA/studio-booking/internal/api/handlers/list_services"
	listTestimonialsHandler "github.com/m04kA/studio-booking/internal/api/handlers/list_testimonials"
	registerClientHandler "github.com/m04kA/studio-booking/internal/api/handlers/register_client"
	updateAppointmentStatusHandler "github.com/m04kA/studio-booking/internal/api/handlers/update_appointment_status"
	updateServiceHandler "github.com/m04kA/studio-booking/internal/api/handlers/update_service"
	updateTestimonialHandler "github.com/m04kA/studio-booking/internal/api/handlers/update_testimonial"
	updateWeekdayHandler "github.com/m04kA/studio-booking/internal/api/handlers/update_weekday"
	"github.com/m04kA/studio-booking/internal/api/middleware"
	"github.com/m04kA/studio-booking/internal/config"
	"github.com/m04kA/studio-booking/internal/infra/migrations"
	appointmentRepo "github.com/m04kA/studio-booking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/studio-booking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/studio-booking/internal/infra/storage/client"
	scheduleRepo "github.com/m04kA/studio-booking/internal/infra/storage/schedule"
	testimonialRepo "github.com/m04kA/studio-booking/internal/infra/storage/testimonial"
	"github.com/m04kA/studio-booking/internal/integrations/callmebot"
	"github.com/m04kA/studio-booking/internal/integrations/resend"
	adminService "github.com/m04kA/studio-booking/internal/service/admin"
	appointmentsService "github.com/m04kA/studio-booking/internal/service/appointments"
	catalogService "github.com/m04kA/studio-booking/internal/service/catalog"
	clientsService "github.com/m04kA/studio-booking/internal/service/clients"
	"github.com/m04kA/studio-booking/internal/service/notifications"
	scheduleService "github.com/m04kA/studio-booking/internal/service/schedule"
	testimonialsService "github.com/m04kA/studio-booking/internal/service/testimonials"
	createAppointmentUC "github.com/m04kA/studio-booking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/studio-booking/internal/usecase/get_available_slots"
	"github.com/m04kA/studio-booking/pkg/dbmetrics"
	"github.com/m04kA/studio-booking/pkg/logger"
	"github.com/m04kA/studio-booking/pkg/metrics"
	"github.com/m04kA/studio-booking/pkg/txmanager"
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

	log.Info("Starting studio-booking...")

	location, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}
	log.Info("Studio timezone: %s", location)

	// Метрики (nil, если выключены - все потребители это допускают)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.RunMigrations {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	testimonialRepository := testimonialRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Уведомления
	var (
		notifier   createAppointmentUC.Notifier
		dispatcher *notifications.Dispatcher
	)
	if cfg.Notifications.Enabled {
		timeout := time.Duration(cfg.Notifications.Timeout) * time.Second

		emailClient := resend.NewClient(
			cfg.Notifications.ResendURL,
			cfg.Notifications.ResendAPIKey,
			cfg.Notifications.ResendFrom,
			timeout,
			log,
		)
		whatsAppClient := callmebot.NewClient(
			cfg.Notifications.CallMeBotURL,
			cfg.Notifications.WhatsAppNumber,
			cfg.Notifications.CallMeBotKey,
			timeout,
		)

		dispatcher = notifications.NewDispatcher(
			emailClient,
			whatsAppClient,
			notifications.Config{
				AdminEmail:      cfg.Notifications.AdminEmail,
				StudioName:      cfg.Notifications.StudioName,
				Timeout:         3 * timeout,
				WhatsAppLimiter: rate.NewLimiter(rate.Limit(cfg.Notifications.WhatsAppRPS), 1),
			},
			metricsCollector,
			log,
		)
		notifier = dispatcher

		log.Info("Notifications enabled (email=%t, whatsapp=%t)", emailClient.Enabled(), whatsAppClient.Enabled())
	}

	// Сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	clientsSvc := clientsService.NewService(clientRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)
	testimonialsSvc := testimonialsService.NewService(testimonialRepository, log)
	sessions := adminService.NewService(
		cfg.Admin.Password,
		time.Duration(cfg.Admin.SessionTTL)*time.Minute,
		log,
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		catalogRepository,
		appointmentRepository,
		location,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	registerClient := registerClientHandler.NewHandler(clientsSvc, log)
	listActiveServices := listServicesHandler.NewHandler(catalogSvc, true, log)
	getActiveSchedule := getScheduleHandler.NewHandler(scheduleSvc, true, log)
	listActiveTestimonials := listTestimonialsHandler.NewHandler(testimonialsSvc, true, log)

	adminLogin := adminLoginHandler.NewHandler(sessions, cfg.Admin.SecureCookies, log)
	adminLogout := adminLogoutHandler.NewHandler(sessions, log)
	listAllServices := listServicesHandler.NewHandler(catalogSvc, false, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getFullSchedule := getScheduleHandler.NewHandler(scheduleSvc, false, log)
	updateWeekday := updateWeekdayHandler.NewHandler(scheduleSvc, log)
	listBlackouts := listBlackoutsHandler.NewHandler(scheduleSvc, log)
	createBlackout := createBlackoutHandler.NewHandler(scheduleSvc, log)
	deleteBlackout := deleteBlackoutHandler.NewHandler(scheduleSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	listAllTestimonials := listTestimonialsHandler.NewHandler(testimonialsSvc, false, log)
	createTestimonial := createTestimonialHandler.NewHandler(testimonialsSvc, log)
	updateTestimonial := updateTestimonialHandler.NewHandler(testimonialsSvc, log)
	deleteTestimonial := deleteTestimonialHandler.NewHandler(testimonialsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", listActiveServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getActiveSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients", registerClient.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/testimonials", listActiveTestimonials.Handle).Methods(http.MethodGet)

	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", adminLogout.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (cookie admin_session)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(sessions))

	// --- Каталог услуг ---
	admin.HandleFunc("/services", listAllServices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Расписание ---
	admin.HandleFunc("/schedule", getFullSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/{weekday}", updateWeekday.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blackouts", listBlackouts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts", createBlackout.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blackouts/{date}", deleteBlackout.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Отзывы ---
	admin.HandleFunc("/testimonials", listAllTestimonials.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/testimonials", createTestimonial.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/testimonials/{testimonialId}", updateTestimonial.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/testimonials/{testimonialId}", deleteTestimonial.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений по уже созданным записям
	if dispatcher != nil {
		if err := dispatcher.Wait(shutdownCtx); err != nil {
			log.Warn("Pending notifications were not delivered: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
