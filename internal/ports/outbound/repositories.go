// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/google/uuid"
)

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// FindByID and FindByIDs return recipes with their ingredients loaded
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Recipe, error)

	// List returns summaries whose ingredients are NotLoaded
	List(ctx context.Context, filter RecipeFilter) ([]recipe.Recipe, error)
	ListWithIngredients(ctx context.Context) ([]recipe.Recipe, error)
}

// RecipeFilter narrows recipe listings
type RecipeFilter struct {
	Category string
	Limit    int
	Offset   int
}

// MealPlanRepository defines the interface for date-keyed meal plans.
// Recipes in returned plans are summaries.
type MealPlanRepository interface {
	FindRange(ctx context.Context, from, to string) (mealplan.Plan, error)
	SaveDay(ctx context.Context, day *mealplan.Day) error
	DeleteDay(ctx context.Context, date string) error
}

// InventoryRepository defines the interface for per-user ingredient stock
type InventoryRepository interface {
	Load(ctx context.Context, userID string) (inventory.Inventory, error)
	Save(ctx context.Context, userID, name string, entry inventory.Entry) error
	Delete(ctx context.Context, userID, name string) error
}

// PurchaseRecord is one purchased item of a window
type PurchaseRecord struct {
	Window shopping.Window
	Item   string
}

// PurchaseRepository defines the interface for purchase flags
type PurchaseRepository interface {
	ListPurchased(ctx context.Context, userID string) ([]PurchaseRecord, error)
	SetPurchased(ctx context.Context, userID string, w shopping.Window, item string, purchased bool) error
}

// CacheRepository defines the interface for caching
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// MetricsRecorder receives application-level measurements
type MetricsRecorder interface {
	ObserveShoppingList(window string, items int, duration time.Duration)
	RecordPurchaseToggle(window, outcome string)
	RecordCacheLookup(hit bool)
}
