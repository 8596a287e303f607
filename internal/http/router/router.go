package router

import (
	"encoding/json"
	"net/http"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/database"
	"github.com/brushworks/fieldops-api/internal/http/handler"
	"github.com/brushworks/fieldops-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/brushworks/fieldops-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	clientHandler       *handler.ClientHandler
	projectHandler      *handler.ProjectHandler
	quoteHandler        *handler.QuoteHandler
	serviceOrderHandler *handler.ServiceOrderHandler
	personnelHandler    *handler.PersonnelHandler
	assignmentHandler   *handler.AssignmentHandler
	activityHandler     *handler.ActivityHandler
	dashboardHandler    *handler.DashboardHandler
	imageHandler        *handler.ImageHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	clientHandler *handler.ClientHandler,
	projectHandler *handler.ProjectHandler,
	quoteHandler *handler.QuoteHandler,
	serviceOrderHandler *handler.ServiceOrderHandler,
	personnelHandler *handler.PersonnelHandler,
	assignmentHandler *handler.AssignmentHandler,
	activityHandler *handler.ActivityHandler,
	dashboardHandler *handler.DashboardHandler,
	imageHandler *handler.ImageHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		userHandler:         userHandler,
		clientHandler:       clientHandler,
		projectHandler:      projectHandler,
		quoteHandler:        quoteHandler,
		serviceOrderHandler: serviceOrderHandler,
		personnelHandler:    personnelHandler,
		assignmentHandler:   assignmentHandler,
		activityHandler:     activityHandler,
		dashboardHandler:    dashboardHandler,
		imageHandler:        imageHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes. Reads are open to every authenticated role,
		// mutations reject viewer accounts, deletions require admin.
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			writer := rt.authMiddleware.RequireWriter
			admin := rt.authMiddleware.RequireAdmin

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.Post("/auth/logout", rt.authHandler.Logout)

			// Dashboard
			r.Get("/dashboard", rt.dashboardHandler.GetStats)

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", rt.clientHandler.List)
				r.With(writer).Post("/", rt.clientHandler.Create)
				r.Get("/follow-ups", rt.clientHandler.FollowUps)
				r.Get("/{id}", rt.clientHandler.GetByID)
				r.With(writer).Put("/{id}", rt.clientHandler.Update)
				r.With(admin).Delete("/{id}", rt.clientHandler.Delete)
			})

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.With(writer).Post("/", rt.projectHandler.Create)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.With(writer).Put("/{id}", rt.projectHandler.Update)
				r.With(admin).Delete("/{id}", rt.projectHandler.Delete)
				r.With(writer).Patch("/{id}/status", rt.projectHandler.UpdateStatus)
				r.Get("/{id}/activities", rt.projectHandler.GetActivities)
				r.Get("/{id}/assignments", rt.assignmentHandler.ListByProject)
				r.Get("/{id}/images", rt.imageHandler.ListByProject)
				r.With(writer).Post("/{id}/images", rt.imageHandler.Upload)
			})

			// Quotes
			r.Route("/quotes", func(r chi.Router) {
				r.Get("/", rt.quoteHandler.List)
				r.With(writer).Post("/", rt.quoteHandler.Create)
				r.Get("/{id}", rt.quoteHandler.GetByID)
				r.With(writer).Post("/{id}/approve", rt.quoteHandler.Approve)
			})

			// Service orders
			r.Route("/service-orders", func(r chi.Router) {
				r.Get("/", rt.serviceOrderHandler.List)
				r.With(writer).Post("/", rt.serviceOrderHandler.Create)
				r.Get("/{id}", rt.serviceOrderHandler.GetByID)
				r.With(writer).Put("/{id}", rt.serviceOrderHandler.Update)
				r.With(admin).Delete("/{id}", rt.serviceOrderHandler.Delete)
				r.With(writer).Post("/{id}/start", rt.serviceOrderHandler.Start)
				r.With(writer).Post("/{id}/complete", rt.serviceOrderHandler.Complete)
			})

			// Personnel
			r.Route("/personnel", func(r chi.Router) {
				r.Get("/", rt.personnelHandler.List)
				r.With(writer).Post("/", rt.personnelHandler.Create)
				r.Get("/{id}", rt.personnelHandler.GetByID)
				r.With(writer).Put("/{id}", rt.personnelHandler.Update)
			})

			// Assignments
			r.Route("/assignments", func(r chi.Router) {
				r.With(writer).Post("/", rt.assignmentHandler.Create)
				r.With(writer).Put("/{id}", rt.assignmentHandler.Update)
				r.With(admin).Delete("/{id}", rt.assignmentHandler.Delete)
			})

			// Images
			r.Route("/images", func(r chi.Router) {
				r.Get("/{id}", rt.imageHandler.Download)
				r.With(admin).Delete("/{id}", rt.imageHandler.Delete)
			})

			// Activities
			r.Get("/activities", rt.activityHandler.List)

			// User administration
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.userHandler.List)
				r.Post("/", rt.userHandler.Create)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Put("/{id}", rt.userHandler.Update)
				r.Delete("/{id}", rt.userHandler.Delete)
			})
		})
	})

	return r
}
