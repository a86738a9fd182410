// Package shopping provides the application layer for windowed shopping lists
package shopping

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/purchase"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Toggle outcomes reported to metrics
const (
	OutcomeApplied    = "applied"
	OutcomeRolledBack = "rolled_back"
)

// IngredientLoader resolves the ingredient lists of planned recipes
type IngredientLoader interface {
	LoadIngredients(ctx context.Context, recipes []recipe.Recipe) map[uuid.UUID]recipe.Recipe
}

// Settings tunes list computation
type Settings struct {
	UserID   string
	Grouping shopping.Grouping
	Options  shopping.Options
}

// ShoppingService implements the shopping list use cases
type ShoppingService struct {
	mu        sync.Mutex
	tracker   *purchase.Tracker
	hydrated  bool
	plans     outbound.MealPlanRepository
	inventory outbound.InventoryRepository
	purchases outbound.PurchaseRepository
	loader    IngredientLoader
	metrics   outbound.MetricsRecorder
	settings  Settings
	now       func() time.Time
	logger    *zap.Logger
}

var _ inbound.ShoppingService = (*ShoppingService)(nil)

// NewShoppingService creates a new shopping service
func NewShoppingService(
	plans outbound.MealPlanRepository,
	inventory outbound.InventoryRepository,
	purchases outbound.PurchaseRepository,
	loader IngredientLoader,
	metrics outbound.MetricsRecorder,
	settings Settings,
	logger *zap.Logger,
) *ShoppingService {
	return &ShoppingService{
		tracker:   purchase.NewTracker(),
		plans:     plans,
		inventory: inventory,
		purchases: purchases,
		loader:    loader,
		metrics:   metrics,
		settings:  settings,
		now:       time.Now,
		logger:    logger.Named("shopping-service"),
	}
}

// WithClock replaces the time source used to resolve windows
func (s *ShoppingService) WithClock(now func() time.Time) *ShoppingService {
	s.now = now
	return s
}

// List computes the shopping list of a window
func (s *ShoppingService) List(ctx context.Context, window string) (*inbound.ShoppingListDTO, error) {
	w, err := shopping.ParseWindow(window)
	if err != nil {
		return nil, errors.NewInvalidWindowError(window)
	}

	started := time.Now()
	items, start, end, err := s.compute(ctx, w)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}

	dto := &inbound.ShoppingListDTO{
		Window: string(w),
		Start:  mealplan.DateKey(start),
		End:    mealplan.DateKey(end),
		Items:  make([]inbound.ShoppingItemDTO, 0, len(items)),
	}
	for _, it := range items {
		dto.Items = append(dto.Items, inbound.ShoppingItemDTO{
			Item:      it,
			Purchased: s.tracker.IsPurchased(w, it.Name),
		})
	}
	summary := s.tracker.Summarize(w, items)
	dto.Total = summary.Total
	dto.UnpurchasedCount = summary.UnpurchasedCount

	s.metrics.ObserveShoppingList(string(w), len(items), time.Since(started))
	s.logger.Debug("Shopping list computed",
		zap.String("window", string(w)),
		zap.Int("items", len(items)),
		zap.Float64("total", dto.Total),
	)
	return dto, nil
}

// TogglePurchased flips the purchase flag of item in window. The flag changes
// immediately and is restored if it cannot be stored.
func (s *ShoppingService) TogglePurchased(ctx context.Context, window, item string) (*inbound.ToggleResultDTO, error) {
	w, err := shopping.ParseWindow(window)
	if err != nil {
		return nil, errors.NewInvalidWindowError(window)
	}
	if item == "" {
		return nil, errors.NewValidationError("item name is required")
	}

	items, _, _, err := s.compute(ctx, w)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}

	cmd := s.tracker.Toggle(w, item)
	if err := s.purchases.SetPurchased(ctx, s.settings.UserID, w, item, cmd.Purchased()); err != nil {
		cmd.Undo(s.tracker)
		s.metrics.RecordPurchaseToggle(string(w), OutcomeRolledBack)
		s.logger.Error("Failed to store purchase flag, reverted",
			zap.String("window", string(w)),
			zap.String("item", item),
			zap.Error(err),
		)
		return nil, errors.NewPersistenceFailedError("toggle purchased", err).
			WithMetadata("window", string(w)).
			WithMetadata("item", item)
	}
	s.metrics.RecordPurchaseToggle(string(w), OutcomeApplied)

	summary := s.tracker.Summarize(w, items)
	return &inbound.ToggleResultDTO{
		Window:           string(w),
		Item:             item,
		Purchased:        cmd.Purchased(),
		Total:            summary.Total,
		UnpurchasedCount: summary.UnpurchasedCount,
	}, nil
}

func (s *ShoppingService) compute(ctx context.Context, w shopping.Window) ([]shopping.Item, time.Time, time.Time, error) {
	now := s.now()
	start, end := w.Range(now)

	plan, err := s.plans.FindRange(ctx, mealplan.DateKey(start), mealplan.DateKey(end))
	if err != nil {
		return nil, start, end, errors.NewDatabaseError("load meal plan", err)
	}
	if plan == nil {
		plan = mealplan.New()
	}

	var planned []recipe.Recipe
	for _, date := range plan.Dates() {
		planned = append(planned, plan[date].Recipes()...)
	}
	loaded := s.loader.LoadIngredients(ctx, planned)
	plan = plan.Map(func(r recipe.Recipe) recipe.Recipe {
		if full, ok := loaded[r.ID]; ok {
			return full
		}
		return r
	})

	inv, err := s.inventory.Load(ctx, s.settings.UserID)
	if err != nil {
		return nil, start, end, errors.NewDatabaseError("load inventory", err)
	}
	if inv == nil {
		inv = inventory.New()
	}

	return shopping.Compute(plan, inv, w, now, s.settings.Grouping, s.settings.Options), start, end, nil
}

// hydrate fills the tracker from storage once. Callers hold s.mu.
func (s *ShoppingService) hydrate(ctx context.Context) error {
	if s.hydrated {
		return nil
	}
	records, err := s.purchases.ListPurchased(ctx, s.settings.UserID)
	if err != nil {
		return errors.NewDatabaseError("load purchases", err)
	}
	for _, rec := range records {
		s.tracker.Set(rec.Window, rec.Item, true)
	}
	s.hydrated = true
	s.logger.Debug("Purchase flags loaded", zap.Int("count", len(records)))
	return nil
}
