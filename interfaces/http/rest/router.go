// Package rest wires the HTTP surface: the paginated list read API and the
// export request endpoint.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/application/services"
	"listkeeper-backend/infrastructure/config"
	"listkeeper-backend/interfaces/http/rest/handlers"
	"listkeeper-backend/interfaces/http/rest/middleware"
	"listkeeper-backend/pkg/ratelimit"
)

// Pinger reports whether the backing store is reachable. Readiness fails
// while it errors.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router creates and configures the HTTP router
type Router struct {
	cfg    *config.Config
	lists  *services.ListService
	queue  ports.MessageQueue
	store  Pinger
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	lists *services.ListService,
	queue ports.MessageQueue,
	store Pinger,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:    cfg,
		lists:  lists,
		queue:  queue,
		store:  store,
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, rt.cfg.JWTIssuer, rt.logger))

		r.Route("/lists", func(r chi.Router) {
			listHandler := handlers.NewListHandler(rt.lists, rt.logger)
			r.Get("/{listID}/items", listHandler.Items)
		})

		r.Route("/exports", func(r chi.Router) {
			// Exports are expensive; cap how often one user can start them.
			r.Use(middleware.LimitPerUser(ratelimit.NewTokenBucket(5, time.Minute)))
			exportHandler := handlers.NewExportHandler(rt.queue, rt.logger)
			r.Post("/", exportHandler.Request)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.store != nil {
		if err := rt.store.Ping(req.Context()); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
