// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create creates a new recipe with its ingredient lines
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a recipe, its ingredient lines and every meal plan
// reference to it. Days left without recipes are removed.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}

		if err := tx.Delete(&IngredientModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&MenuPlanAdditionalModel{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		for _, column := range []string{"breakfast_id", "lunch_id", "dinner_id", "extra_id"} {
			if err := tx.Model(&MenuPlanModel{}).Where(column+" = ?", id).Update(column, nil).Error; err != nil {
				return err
			}
		}

		return tx.Where("breakfast_id IS NULL AND lunch_id IS NULL AND dinner_id IS NULL AND extra_id IS NULL").
			Where("plan_date NOT IN (SELECT plan_date FROM menu_plan_additional)").
			Delete(&MenuPlanModel{}).Error
	})
}

// Count returns the number of recipes
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error
	return count, err
}

// FindByID finds a recipe by ID with its ingredients
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		First(&model, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	entity := ModelToRecipe(&model)
	return &entity, nil
}

// FindByIDs finds recipes with their ingredients. Unknown IDs are skipped.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return []recipe.Recipe{}, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		Where("id IN ?", ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes, nil
}

// List returns recipe summaries ordered by title
func (r *RecipeRepository) List(ctx context.Context, filter outbound.RecipeFilter) ([]recipe.Recipe, error) {
	var models []RecipeModel

	query := r.db.WithContext(ctx).Model(&RecipeModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Order("title ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToSummary(&models[i]))
	}
	return recipes, nil
}

// ListWithIngredients returns every recipe with its ingredients, ordered by title
func (r *RecipeRepository) ListWithIngredients(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", orderedIngredients).
		Order("title ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes, nil
}

// summaries loads recipe summaries keyed by ID
func summaries(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]recipe.Recipe, error) {
	out := make(map[uuid.UUID]recipe.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var models []RecipeModel
	if err := tx.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	for i := range models {
		out[models[i].ID] = ModelToSummary(&models[i])
	}
	return out, nil
}
