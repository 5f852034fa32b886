package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solstice-events/bookings-api/internal/auth"
	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/solstice-events/bookings-api/internal/database"
	"github.com/solstice-events/bookings-api/internal/derive"
	"github.com/solstice-events/bookings-api/internal/http/handler"
	"github.com/solstice-events/bookings-api/internal/http/middleware"
	"github.com/solstice-events/bookings-api/internal/http/router"
	"github.com/solstice-events/bookings-api/internal/jobs"
	"github.com/solstice-events/bookings-api/internal/logger"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/internal/storage"
	"github.com/solstice-events/bookings-api/internal/warehouse"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets.
	// Development uses environment variables; staging and production
	// fetch from Azure Key Vault.
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Reporting warehouse connection (optional). The app continues
	// without it if not configured.
	var whClient *warehouse.Client
	if cfg.Warehouse.Enabled {
		whClient, err = warehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			log.Warn("warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		}
	} else {
		log.Info("warehouse export not configured, skipping")
	}

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	contactRepo := repository.NewContactRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	contractRepo := repository.NewContractRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	calendarRepo := repository.NewCalendarEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	numberSequenceRepo := repository.NewNumberSequenceRepository(db)

	// Services
	refs := service.NewReferenceResolver(companyRepo, contactRepo, userRepo, enquiryRepo, quoteRepo, bookingRepo)
	numberSequenceService := service.NewNumberSequenceService(numberSequenceRepo, log)
	companyService := service.NewCompanyService(companyRepo, contactRepo, log)
	contactService := service.NewContactService(contactRepo, companyRepo, log)
	enquiryService := service.NewEnquiryService(enquiryRepo, noteRepo, refs, log)
	quoteService := service.NewQuoteService(quoteRepo, refs, numberSequenceService, log)
	bookingService := service.NewBookingService(bookingRepo, quoteRepo, calendarRepo, refs, numberSequenceService, derive.Default(), log)
	invoiceService := service.NewInvoiceService(invoiceRepo, refs, numberSequenceService, log)
	contractService := service.NewContractService(contractRepo, refs, numberSequenceService, fileStorage, log)
	taskService := service.NewTaskService(taskRepo, refs, log)
	calendarService := service.NewCalendarService(calendarRepo, refs, log)
	userService := service.NewUserService(userRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	companyHandler := handler.NewCompanyHandler(companyService)
	contactHandler := handler.NewContactHandler(contactService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	contractHandler := handler.NewContractHandler(contractService)
	taskHandler := handler.NewTaskHandler(taskService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	userHandler := handler.NewUserHandler(userService)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		companyHandler,
		contactHandler,
		enquiryHandler,
		quoteHandler,
		bookingHandler,
		invoiceHandler,
		contractHandler,
		taskHandler,
		calendarHandler,
		userHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterOverdueInvoiceJob(
			scheduler,
			invoiceRepo,
			log,
			cfg.Jobs.OverdueReminderSchedule,
			5*time.Minute,
		); err != nil {
			log.Error("failed to register overdue invoice reminder", zap.Error(err))
		}

		if whClient.IsEnabled() {
			exporter := warehouse.NewExporter(whClient, log)
			if err := jobs.RegisterWarehouseExportJob(
				scheduler,
				invoiceRepo,
				exporter,
				log,
				cfg.Jobs.WarehouseExportSchedule,
				cfg.Warehouse.QueryTimeoutDuration(),
			); err != nil {
				log.Error("failed to register warehouse export", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := whClient.Close(); err != nil {
			log.Warn("error closing warehouse connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
