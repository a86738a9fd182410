// Package recipe provides the application layer for the recipe catalogue
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/match"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo    outbound.RecipeRepository
	inventoryRepo outbound.InventoryRepository
	cache         outbound.CacheRepository
	metrics       outbound.MetricsRecorder
	userID        string
	cacheTTL      time.Duration
	logger        *zap.Logger
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	inventoryRepo outbound.InventoryRepository,
	cache outbound.CacheRepository,
	metrics outbound.MetricsRecorder,
	userID string,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
		metrics:       metrics,
		userID:        userID,
		cacheTTL:      cacheTTL,
		logger:        logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("title", cmd.Title),
		zap.Int("ingredients", len(cmd.Ingredients)),
	)

	ingredients := make([]recipe.Ingredient, 0, len(cmd.Ingredients))
	for _, ing := range cmd.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}

	entity, err := recipe.NewRecipe(cmd.Title, cmd.Description, cmd.Category, ingredients)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	dto := ToDTO(*entity)
	s.cacheRecipe(ctx, *entity)

	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("title", dto.Title),
	)

	return &dto, nil
}

// DeleteRecipe removes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return errors.NewRecipeNotFoundError(id.String())
		}
		return errors.NewDatabaseError("delete recipe", err)
	}
	s.invalidateRecipeCache(ctx, id)

	s.logger.Info("Recipe deleted", zap.String("recipe_id", id.String()))
	return nil
}

// GetRecipe returns a recipe with its ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(r)
	return &dto, nil
}

// ListRecipes returns recipe summaries
func (s *RecipeService) ListRecipes(ctx context.Context, query inbound.RecipeQuery) ([]inbound.RecipeDTO, error) {
	recipes, err := s.recipeRepo.List(ctx, outbound.RecipeFilter{
		Category: query.Category,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	out := make([]inbound.RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToDTO(r))
	}
	return out, nil
}

// Recommend ranks fully loaded recipes by how well the inventory covers them
func (s *RecipeService) Recommend(ctx context.Context, limit int) ([]inbound.RecommendationDTO, error) {
	recipes, err := s.recipeRepo.ListWithIngredients(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes with ingredients", err)
	}

	inv, err := s.inventoryRepo.Load(ctx, s.userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load inventory", err)
	}

	recs := match.Recommend(recipes, inv)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	out := make([]inbound.RecommendationDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, inbound.RecommendationDTO{
			Recipe:        ToDTO(rec.Recipe),
			MatchPercent:  rec.Result.MatchPercent,
			MatchingCount: rec.Result.MatchingCount,
			TotalCount:    rec.Result.TotalCount,
			Missing:       rec.Result.Missing,
		})
	}

	s.logger.Debug("Computed recommendations",
		zap.Int("candidates", len(recipes)),
		zap.Int("recommended", len(out)),
	)
	return out, nil
}

// Catalog lists the distinct ingredients used across recipes
func (s *RecipeService) Catalog(ctx context.Context) ([]inventory.CatalogEntry, error) {
	recipes, err := s.recipeRepo.ListWithIngredients(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes with ingredients", err)
	}
	return inventory.Catalog(recipes), nil
}

// Summary returns a recipe without its ingredients
func (s *RecipeService) Summary(ctx context.Context, id uuid.UUID) (recipe.Recipe, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return r.Summary(), nil
}

// LoadIngredients resolves the ingredient lists of the given recipes. A recipe
// that cannot be fetched stays NotLoaded and is reported in the log only.
func (s *RecipeService) LoadIngredients(ctx context.Context, recipes []recipe.Recipe) map[uuid.UUID]recipe.Recipe {
	out := make(map[uuid.UUID]recipe.Recipe, len(recipes))
	var misses []uuid.UUID
	for _, r := range recipes {
		if r.IsLoaded() {
			out[r.ID] = r
			continue
		}
		if cached, ok := s.cachedRecipe(ctx, r.ID); ok {
			out[r.ID] = cached
			continue
		}
		misses = append(misses, r.ID)
	}
	if len(misses) == 0 {
		return out
	}

	loaded, err := s.recipeRepo.FindByIDs(ctx, misses)
	if err != nil {
		s.logger.Warn("Failed to load recipe ingredients, continuing without them",
			zap.Int("recipes", len(misses)),
			zap.Error(err),
		)
		return out
	}
	for _, r := range loaded {
		out[r.ID] = r
		s.cacheRecipe(ctx, r)
	}
	return out
}

func (s *RecipeService) load(ctx context.Context, id uuid.UUID) (recipe.Recipe, error) {
	if cached, ok := s.cachedRecipe(ctx, id); ok {
		return cached, nil
	}

	r, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return recipe.Recipe{}, errors.NewRecipeNotFoundError(id.String())
		}
		return recipe.Recipe{}, errors.NewDatabaseError("find recipe", err)
	}

	s.cacheRecipe(ctx, *r)
	return *r, nil
}

// Cache operations

type cachedRecipe struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Ingredients []inbound.IngredientDTO `json:"ingredients"`
}

func recipeCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", id)
}

func (s *RecipeService) cachedRecipe(ctx context.Context, id uuid.UUID) (recipe.Recipe, bool) {
	data, err := s.cache.Get(ctx, recipeCacheKey(id))
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Debug("Cache read failed", zap.String("recipe_id", id.String()), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
		return recipe.Recipe{}, false
	}

	var c cachedRecipe
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("Discarding corrupt cache entry", zap.String("recipe_id", id.String()), zap.Error(err))
		s.invalidateRecipeCache(ctx, id)
		s.metrics.RecordCacheLookup(false)
		return recipe.Recipe{}, false
	}

	s.metrics.RecordCacheLookup(true)
	return recipe.Recipe{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Ingredients: recipe.IngredientsFromList(FromIngredientDTOs(c.Ingredients)),
	}, true
}

func (s *RecipeService) cacheRecipe(ctx context.Context, r recipe.Recipe) {
	dto := ToDTO(r)
	data, err := json.Marshal(cachedRecipe{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Ingredients: dto.Ingredients,
	})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, recipeCacheKey(r.ID), data, s.cacheTTL); err != nil {
		s.logger.Debug("Cache write failed", zap.String("recipe_id", r.ID.String()), zap.Error(err))
	}
}

func (s *RecipeService) invalidateRecipeCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, recipeCacheKey(id)); err != nil {
		s.logger.Debug("Cache delete failed", zap.String("recipe_id", id.String()), zap.Error(err))
	}
}

// ToDTO converts a recipe entity to its response form
func ToDTO(r recipe.Recipe) inbound.RecipeDTO {
	list, loaded := r.LoadedIngredients()
	dto := inbound.RecipeDTO{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		IngredientsLoaded: loaded,
		Ingredients:       make([]inbound.IngredientDTO, 0, len(list)),
	}
	for _, ing := range list {
		dto.Ingredients = append(dto.Ingredients, inbound.IngredientDTO{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	return dto
}

// FromIngredientDTOs converts transported ingredient lines to domain values
func FromIngredientDTOs(in []inbound.IngredientDTO) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, recipe.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	return out
}
