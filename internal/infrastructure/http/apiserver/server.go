// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alchemorsel/planner/internal/infrastructure/config"
	"github.com/alchemorsel/planner/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/planner/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/planner/internal/infrastructure/monitoring"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Services groups the use cases exposed over HTTP
type Services struct {
	Recipes   inbound.RecipeService
	Inventory inbound.InventoryService
	MealPlans inbound.MealPlanService
	Shopping  inbound.ShoppingService
}

// APIServer represents the JSON API HTTP server
type APIServer struct {
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
	router    *chi.Mux
	services  Services
	metrics   *monitoring.MetricsCollector
	validator handlers.Validator
	db        handlers.Pinger
}

// NewAPIServer creates a new API server instance. metrics and db may be nil.
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	services Services,
	validator handlers.Validator,
	metrics *monitoring.MetricsCollector,
	db handlers.Pinger,
) *APIServer {
	server := &APIServer{
		config:    cfg,
		logger:    log.Named("api-server"),
		services:  services,
		metrics:   metrics,
		validator: validator,
		db:        db,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}

	requestTimeout := s.config.Server.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(chimiddleware.Compress(5))

	health := handlers.NewHealthHandler(s.config.App.Name, s.config.App.Version, s.db, s.logger)
	r.Get("/health", health.Health)

	if s.metrics != nil && s.config.Monitoring.MetricsEnabled {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NewRateLimiter(s.config.RateLimit, s.logger).Handler)
		r.Use(middleware.JSONOnly())
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	recipeH := handlers.NewRecipeHandlers(s.services.Recipes, s.validator, s.logger)
	inventoryH := handlers.NewInventoryHandlers(s.services.Inventory, s.validator, s.logger)
	planH := handlers.NewMealPlanHandlers(s.services.MealPlans, s.validator, s.logger)
	shoppingH := handlers.NewShoppingHandlers(s.services.Shopping, s.logger)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeH.ListRecipes)
		r.Post("/", recipeH.CreateRecipe)
		r.Get("/recommendations", recipeH.Recommend)
		r.Get("/{id}", recipeH.GetRecipe)
		r.Delete("/{id}", recipeH.DeleteRecipe)
	})

	r.Get("/ingredients/catalog", recipeH.Catalog)

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", inventoryH.List)
		r.Post("/batch", inventoryH.Batch)
		r.Post("/toggle", inventoryH.Toggle)
		r.Put("/{name}", inventoryH.Upsert)
		r.Delete("/{name}", inventoryH.Remove)
		r.Post("/{name}/adjust", inventoryH.Adjust)
		r.Put("/{name}/price", inventoryH.SetPrice)
	})

	r.Route("/menu-plans", func(r chi.Router) {
		r.Get("/", planH.GetRange)
		r.Delete("/{date}", planH.DeleteDay)
		r.Post("/{date}/additional", planH.AddAdditional)
		r.Delete("/{date}/additional/{index}", planH.RemoveAdditional)
		r.Put("/{date}/{slot}", planH.AssignSlot)
		r.Delete("/{date}/{slot}", planH.ClearSlot)
	})

	r.Route("/shopping/{window}", func(r chi.Router) {
		r.Get("/", shoppingH.List)
		r.Post("/items/{name}/toggle", shoppingH.TogglePurchased)
	})
}

// Handler returns the root router
func (s *APIServer) Handler() http.Handler {
	return s.router
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
