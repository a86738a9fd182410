// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// NewMockRecipeRepository creates a new mock recipe repository
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{}
}

// Create stores a recipe
func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Delete deletes a recipe
func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Count returns the number of recipes
func (m *MockRecipeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// FindByID finds a recipe by ID
func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

// FindByIDs finds recipes by ID
func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// List lists recipe summaries
func (m *MockRecipeRepository) List(ctx context.Context, filter outbound.RecipeFilter) ([]recipe.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// ListWithIngredients lists every recipe with its ingredients
func (m *MockRecipeRepository) ListWithIngredients(ctx context.Context) ([]recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// MockMealPlanRepository provides a mock implementation of MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

// FindRange returns the plan between two date keys
func (m *MockMealPlanRepository) FindRange(ctx context.Context, from, to string) (mealplan.Plan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(mealplan.Plan), args.Error(1)
}

// SaveDay stores a day
func (m *MockMealPlanRepository) SaveDay(ctx context.Context, day *mealplan.Day) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

// DeleteDay removes a day
func (m *MockMealPlanRepository) DeleteDay(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

// MockInventoryRepository provides a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

// Load returns the inventory of a user
func (m *MockInventoryRepository) Load(ctx context.Context, userID string) (inventory.Inventory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(inventory.Inventory).Clone(), args.Error(1)
}

// Save stores one entry
func (m *MockInventoryRepository) Save(ctx context.Context, userID, name string, entry inventory.Entry) error {
	args := m.Called(ctx, userID, name, entry)
	return args.Error(0)
}

// Delete removes one entry
func (m *MockInventoryRepository) Delete(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

// MockPurchaseRepository provides a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

// ListPurchased returns the purchased items of a user
func (m *MockPurchaseRepository) ListPurchased(ctx context.Context, userID string) ([]outbound.PurchaseRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.PurchaseRecord), args.Error(1)
}

// SetPurchased stores a purchase flag
func (m *MockPurchaseRepository) SetPurchased(ctx context.Context, userID string, w shopping.Window, item string, purchased bool) error {
	args := m.Called(ctx, userID, w, item, purchased)
	return args.Error(0)
}

// MockCacheRepository is a working in-memory cache whose calls can be asserted
type MockCacheRepository struct {
	mock.Mock
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMockCacheRepository creates a new mock cache
func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

// Get returns a cached value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, outbound.ErrCacheMiss
}

// Set stores a value
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes a value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Exists reports whether a key is cached
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

// Keys returns the number of cached keys
func (m *MockCacheRepository) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// MockMetricsRecorder records metric calls
type MockMetricsRecorder struct {
	mu        sync.Mutex
	Lists     []string
	Toggles   map[string]int
	CacheHits int
	CacheMiss int
}

// NewMockMetricsRecorder creates a new metrics recorder
func NewMockMetricsRecorder() *MockMetricsRecorder {
	return &MockMetricsRecorder{Toggles: make(map[string]int)}
}

// ObserveShoppingList records a computed list
func (m *MockMetricsRecorder) ObserveShoppingList(window string, items int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lists = append(m.Lists, window)
}

// RecordPurchaseToggle records a toggle outcome
func (m *MockMetricsRecorder) RecordPurchaseToggle(window, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Toggles[outcome]++
}

// RecordCacheLookup records a cache lookup
func (m *MockMetricsRecorder) RecordCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.CacheHits++
		return
	}
	m.CacheMiss++
}

// ToggleCount returns how many toggles ended with outcome
func (m *MockMetricsRecorder) ToggleCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Toggles[outcome]
}
