package testutils

import (
	"context"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService provides a mock implementation of inbound.RecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, query inbound.RecipeQuery) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) Recommend(ctx context.Context, limit int) ([]inbound.RecommendationDTO, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecommendationDTO), args.Error(1)
}

func (m *MockRecipeService) Catalog(ctx context.Context) ([]inventory.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.CatalogEntry), args.Error(1)
}

// MockInventoryService provides a mock implementation of inbound.InventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context) ([]inbound.InventoryItemDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.InventoryItemDTO), args.Error(1)
}

func (m *MockInventoryService) Upsert(ctx context.Context, cmd inbound.UpsertIngredientCommand) (*inbound.InventoryItemDTO, error) {
	args := m.Called(ctx, cmd)
	return itemResult(args)
}

func (m *MockInventoryService) BatchUpsert(ctx context.Context, cmds []inbound.UpsertIngredientCommand) ([]inbound.InventoryItemDTO, error) {
	args := m.Called(ctx, cmds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.InventoryItemDTO), args.Error(1)
}

func (m *MockInventoryService) Adjust(ctx context.Context, name string, delta float64) (*inbound.InventoryItemDTO, error) {
	args := m.Called(ctx, name, delta)
	return itemResult(args)
}

func (m *MockInventoryService) SetPrice(ctx context.Context, name string, price float64) (*inbound.InventoryItemDTO, error) {
	args := m.Called(ctx, name, price)
	return itemResult(args)
}

func (m *MockInventoryService) Toggle(ctx context.Context, name, unit string) (*inbound.InventoryItemDTO, error) {
	args := m.Called(ctx, name, unit)
	return itemResult(args)
}

func (m *MockInventoryService) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func itemResult(args mock.Arguments) (*inbound.InventoryItemDTO, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.InventoryItemDTO), args.Error(1)
}

// MockMealPlanService provides a mock implementation of inbound.MealPlanService
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) GetRange(ctx context.Context, from, to string) ([]inbound.DayDTO, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.DayDTO), args.Error(1)
}

func (m *MockMealPlanService) AssignSlot(ctx context.Context, cmd inbound.AssignSlotCommand) (*inbound.DayDTO, error) {
	args := m.Called(ctx, cmd)
	return dayResult(args)
}

func (m *MockMealPlanService) ClearSlot(ctx context.Context, date, slot string) (*inbound.DayDTO, error) {
	args := m.Called(ctx, date, slot)
	return dayResult(args)
}

func (m *MockMealPlanService) AddAdditional(ctx context.Context, date string, recipeID uuid.UUID) (*inbound.DayDTO, error) {
	args := m.Called(ctx, date, recipeID)
	return dayResult(args)
}

func (m *MockMealPlanService) RemoveAdditional(ctx context.Context, date string, index int) (*inbound.DayDTO, error) {
	args := m.Called(ctx, date, index)
	return dayResult(args)
}

func (m *MockMealPlanService) DeleteDay(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func dayResult(args mock.Arguments) (*inbound.DayDTO, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.DayDTO), args.Error(1)
}

// MockShoppingService provides a mock implementation of inbound.ShoppingService
type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) List(ctx context.Context, window string) (*inbound.ShoppingListDTO, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListDTO), args.Error(1)
}

func (m *MockShoppingService) TogglePurchased(ctx context.Context, window, item string) (*inbound.ToggleResultDTO, error) {
	args := m.Called(ctx, window, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ToggleResultDTO), args.Error(1)
}

var (
	_ inbound.RecipeService    = (*MockRecipeService)(nil)
	_ inbound.InventoryService = (*MockInventoryService)(nil)
	_ inbound.MealPlanService  = (*MockMealPlanService)(nil)
	_ inbound.ShoppingService  = (*MockShoppingService)(nil)
)
