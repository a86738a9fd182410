// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/google/uuid"
)

// RecipeService defines the use cases for the recipe catalogue
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error

	GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, query RecipeQuery) ([]RecipeDTO, error)
	Recommend(ctx context.Context, limit int) ([]RecommendationDTO, error)
	Catalog(ctx context.Context) ([]inventory.CatalogEntry, error)
}

// InventoryService defines the use cases for on-hand ingredients
type InventoryService interface {
	List(ctx context.Context) ([]InventoryItemDTO, error)
	Upsert(ctx context.Context, cmd UpsertIngredientCommand) (*InventoryItemDTO, error)
	BatchUpsert(ctx context.Context, cmds []UpsertIngredientCommand) ([]InventoryItemDTO, error)
	Adjust(ctx context.Context, name string, delta float64) (*InventoryItemDTO, error)
	SetPrice(ctx context.Context, name string, price float64) (*InventoryItemDTO, error)
	Toggle(ctx context.Context, name, unit string) (*InventoryItemDTO, error)
	Remove(ctx context.Context, name string) error
}

// MealPlanService defines the use cases for scheduling recipes
type MealPlanService interface {
	GetRange(ctx context.Context, from, to string) ([]DayDTO, error)
	AssignSlot(ctx context.Context, cmd AssignSlotCommand) (*DayDTO, error)
	ClearSlot(ctx context.Context, date, slot string) (*DayDTO, error)
	AddAdditional(ctx context.Context, date string, recipeID uuid.UUID) (*DayDTO, error)
	RemoveAdditional(ctx context.Context, date string, index int) (*DayDTO, error)
	DeleteDay(ctx context.Context, date string) error
}

// ShoppingService defines the use cases for windowed shopping lists
type ShoppingService interface {
	List(ctx context.Context, window string) (*ShoppingListDTO, error)
	TogglePurchased(ctx context.Context, window, item string) (*ToggleResultDTO, error)
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Title       string
	Description string
	Category    string
	Ingredients []IngredientDTO
}

// RecipeQuery filters recipe listings
type RecipeQuery struct {
	Category string
	Limit    int
	Offset   int
}

// UpsertIngredientCommand sets the stock of one ingredient
type UpsertIngredientCommand struct {
	Name     string
	Quantity float64
	Price    float64
}

// AssignSlotCommand places a recipe in a named slot
type AssignSlotCommand struct {
	Date     string
	Slot     string
	RecipeID uuid.UUID
}

// IngredientDTO represents a recipe ingredient line
type IngredientDTO struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// RecipeDTO represents a recipe in responses
type RecipeDTO struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	IngredientsLoaded bool            `json:"ingredients_loaded"`
	Ingredients       []IngredientDTO `json:"ingredients"`
}

// RecommendationDTO is a recipe ranked by inventory coverage
type RecommendationDTO struct {
	Recipe        RecipeDTO `json:"recipe"`
	MatchPercent  int       `json:"match_percent"`
	MatchingCount int       `json:"matching_count"`
	TotalCount    int       `json:"total_count"`
	Missing       []string  `json:"missing"`
}

// InventoryItemDTO is the stock of one ingredient
type InventoryItemDTO struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Present   bool    `json:"present"`
}

// RecipeRefDTO references a scheduled recipe
type RecipeRefDTO struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category,omitempty"`
}

// DayDTO is the plan of one date. Pruned is set when a mutation left the
// day empty and it was deleted.
type DayDTO struct {
	Date       string         `json:"date"`
	Pruned     bool           `json:"pruned,omitempty"`
	Breakfast  *RecipeRefDTO  `json:"breakfast,omitempty"`
	Lunch      *RecipeRefDTO  `json:"lunch,omitempty"`
	Dinner     *RecipeRefDTO  `json:"dinner,omitempty"`
	Extra      *RecipeRefDTO  `json:"extra,omitempty"`
	Additional []RecipeRefDTO `json:"additional"`
}

// ShoppingItemDTO is a priced list line with its purchase flag
type ShoppingItemDTO struct {
	shopping.Item
	Purchased bool `json:"purchased"`
}

// ShoppingListDTO is the list of one window
type ShoppingListDTO struct {
	Window           string            `json:"window"`
	Start            string            `json:"start"`
	End              string            `json:"end"`
	Items            []ShoppingItemDTO `json:"items"`
	Total            float64           `json:"total"`
	UnpurchasedCount int               `json:"unpurchased_count"`
}

// ToggleResultDTO reports the state after a purchase toggle
type ToggleResultDTO struct {
	Window           string  `json:"window"`
	Item             string  `json:"item"`
	Purchased        bool    `json:"purchased"`
	Total            float64 `json:"total"`
	UnpurchasedCount int     `json:"unpurchased_count"`
}
