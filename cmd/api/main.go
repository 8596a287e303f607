package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brushworks/fieldops-api/docs"
	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/database"
	"github.com/brushworks/fieldops-api/internal/http/handler"
	"github.com/brushworks/fieldops-api/internal/http/middleware"
	"github.com/brushworks/fieldops-api/internal/http/router"
	"github.com/brushworks/fieldops-api/internal/jobs"
	"github.com/brushworks/fieldops-api/internal/logger"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/brushworks/fieldops-api/internal/storage"
	"go.uber.org/zap"
)

// @title FieldOps API
// @version 1.0
// @description Operations dashboard API for a painting contractor: clients, project pipeline, quotes, service orders, and personnel

// @contact.name API Support
// @contact.email support@brushworks.no

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

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

	// Initialize logger
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

	// Configure Swagger host based on environment
	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// In development the schema is kept in sync automatically;
	// staging and production run goose migrations instead
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database schema migrated")
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Token manager for login sessions
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenLifetimeDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	serviceOrderRepo := repository.NewServiceOrderRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	imageRepo := repository.NewProjectImageRepository(db)

	// Initialize services
	userService := service.NewUserService(db, userRepo, activityRepo, tokens, log)
	clientService := service.NewClientService(db, clientRepo, activityRepo, log)
	projectService := service.NewProjectService(db, projectRepo, clientRepo, activityRepo, &cfg.Pipeline, log)
	quoteService := service.NewQuoteService(db, quoteRepo, projectRepo, activityRepo, projectService, log)
	serviceOrderService := service.NewServiceOrderService(db, serviceOrderRepo, projectRepo, activityRepo, projectService, log)
	personnelService := service.NewPersonnelService(db, personnelRepo, assignmentRepo, activityRepo, log)
	assignmentService := service.NewAssignmentService(db, assignmentRepo, projectRepo, personnelRepo, activityRepo, log)
	activityService := service.NewActivityService(activityRepo, log)
	dashboardService := service.NewDashboardService(projectRepo, quoteRepo, clientRepo, activityRepo, personnelService, log)
	imageService := service.NewImageService(db, imageRepo, projectRepo, activityRepo, fileStorage, log)

	// Seed the initial superadmin on an empty store
	if err := userService.EnsureAdminUser(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, log)
	userHandler := handler.NewUserHandler(userService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	projectHandler := handler.NewProjectHandler(projectService, activityService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	serviceOrderHandler := handler.NewServiceOrderHandler(serviceOrderService, log)
	personnelHandler := handler.NewPersonnelHandler(personnelService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	activityHandler := handler.NewActivityHandler(activityService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	imageHandler := handler.NewImageHandler(imageService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		clientHandler,
		projectHandler,
		quoteHandler,
		serviceOrderHandler,
		personnelHandler,
		assignmentHandler,
		activityHandler,
		dashboardHandler,
		imageHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.FollowUpEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterFollowUpJob(scheduler, clientService, log, cfg.Jobs.FollowUpSchedule); err != nil {
			log.Error("Failed to register follow-up job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with follow-up job",
				zap.String("cron_expr", cfg.Jobs.FollowUpSchedule),
			)
		}
	} else {
		log.Info("Follow-up reminder job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
