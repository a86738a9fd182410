// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	inventoryApp "github.com/alchemorsel/planner/internal/application/inventory"
	mealplanApp "github.com/alchemorsel/planner/internal/application/mealplan"
	recipeApp "github.com/alchemorsel/planner/internal/application/recipe"
	shoppingApp "github.com/alchemorsel/planner/internal/application/shopping"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/infrastructure/config"
	"github.com/alchemorsel/planner/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/planner/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/planner/internal/infrastructure/monitoring"
	gormRepo "github.com/alchemorsel/planner/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/planner/internal/infrastructure/persistence/memory"
	redisCache "github.com/alchemorsel/planner/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/planner/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/planner/internal/infrastructure/security"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			Service:     cfg.App.Name,
		})
	},
)

// DatabaseModule provides the SQLite database
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := sqlite.SetupDatabase(
			cfg.Database.Path,
			sqlite.ParseLogLevel(cfg.Database.LogLevel),
			cfg.Database.AutoMigrate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(context.Background(), db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == sqlite.MemoryPath),
		)

		return db, nil
	},
	func(db *gorm.DB) (*sql.DB, error) {
		return db.DB()
	},
)

// CacheModule provides the recipe cache selected by cache.driver
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Cache.Driver == "redis" {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client, err := redisCache.NewClient(ctx, cfg.Redis, log)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return client.Close()
				},
			})
			return redisCache.NewCacheRepository(client, log), nil
		}

		log.Info("Using in-memory recipe cache")
		cache := memory.NewCacheRepository(time.Minute)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				cache.Close()
				return nil
			},
		})
		return cache, nil
	},
)

// MonitoringModule provides Prometheus metrics
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(m *monitoring.MetricsCollector) outbound.MetricsRecorder {
		return m
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		gormRepo.NewMealPlanRepository,
		fx.As(new(outbound.MealPlanRepository)),
	),
	fx.Annotate(
		gormRepo.NewInventoryRepository,
		fx.As(new(outbound.InventoryRepository)),
	),
	fx.Annotate(
		gormRepo.NewPurchaseRepository,
		fx.As(new(outbound.PurchaseRepository)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		recipes outbound.RecipeRepository,
		inventory outbound.InventoryRepository,
		cache outbound.CacheRepository,
		metrics outbound.MetricsRecorder,
		cfg *config.Config,
		log *zap.Logger,
	) *recipeApp.RecipeService {
		return recipeApp.NewRecipeService(recipes, inventory, cache, metrics, cfg.Shopping.UserID, cfg.Cache.TTL, log)
	},
	func(s *recipeApp.RecipeService) inbound.RecipeService { return s },

	func(repo outbound.InventoryRepository, cfg *config.Config, log *zap.Logger) inbound.InventoryService {
		return inventoryApp.NewInventoryService(repo, cfg.Shopping.UserID, log)
	},

	func(repo outbound.MealPlanRepository, recipes *recipeApp.RecipeService, log *zap.Logger) inbound.MealPlanService {
		return mealplanApp.NewMealPlanService(repo, recipes, log)
	},

	func(
		plans outbound.MealPlanRepository,
		inventory outbound.InventoryRepository,
		purchases outbound.PurchaseRepository,
		recipes *recipeApp.RecipeService,
		metrics outbound.MetricsRecorder,
		cfg *config.Config,
		log *zap.Logger,
	) (inbound.ShoppingService, error) {
		settings, err := ShoppingSettings(cfg.Shopping)
		if err != nil {
			return nil, err
		}
		return shoppingApp.NewShoppingService(plans, inventory, purchases, recipes, metrics, settings, log), nil
	},
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	fx.Annotate(
		security.NewValidationService,
		fx.As(new(handlers.Validator)),
	),
	func(
		cfg *config.Config,
		log *zap.Logger,
		recipes inbound.RecipeService,
		inventory inbound.InventoryService,
		plans inbound.MealPlanService,
		shoppingSvc inbound.ShoppingService,
		validator handlers.Validator,
		metrics *monitoring.MetricsCollector,
		db *sql.DB,
	) *apiserver.APIServer {
		return apiserver.NewAPIServer(cfg, log, apiserver.Services{
			Recipes:   recipes,
			Inventory: inventory,
			MealPlans: plans,
			Shopping:  shoppingSvc,
		}, validator, metrics, db)
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// ShoppingSettings converts the shopping configuration into service settings
func ShoppingSettings(cfg config.ShoppingConfig) (shoppingApp.Settings, error) {
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		return shoppingApp.Settings{}, fmt.Errorf("invalid shopping locale %q: %w", cfg.Locale, err)
	}

	grouping := shopping.GroupByName
	if cfg.GroupByUnit {
		grouping = shopping.GroupByNameAndUnit
	}

	return shoppingApp.Settings{
		UserID:   cfg.UserID,
		Grouping: grouping,
		Options: shopping.Options{
			DefaultPrice: cfg.DefaultPrice,
			Locale:       locale,
		},
	}, nil
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	db *sql.DB,
	metrics *monitoring.MetricsCollector,
	server *apiserver.APIServer,
) {
	collectorCtx, stopCollector := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting planner",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if cfg.Monitoring.MetricsEnabled {
				metrics.StartCollector(collectorCtx, 15*time.Second, db)
			}

			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down planner")
			stopCollector()

			if cfg.Server.ShutdownTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
				defer cancel()
			}

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := db.Close(); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}

			_ = log.Sync()

			return nil
		},
	})
}
