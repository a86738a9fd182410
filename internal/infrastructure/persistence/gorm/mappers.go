package gorm

import (
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/google/uuid"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	model := &RecipeModel{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
	}

	list, _ := r.LoadedIngredients()
	for i, ing := range list {
		model.Ingredients = append(model.Ingredients, IngredientModel{
			RecipeID: r.ID,
			Position: i,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		})
	}
	return model
}

// ModelToRecipe converts a GORM model with preloaded ingredients to a domain recipe
func ModelToRecipe(model *RecipeModel) recipe.Recipe {
	list := make([]recipe.Ingredient, 0, len(model.Ingredients))
	for _, ing := range model.Ingredients {
		list = append(list, recipe.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}

	r := ModelToSummary(model)
	r.Ingredients = recipe.IngredientsFromList(list)
	return r
}

// ModelToSummary converts a GORM model to a recipe whose ingredients are not loaded
func ModelToSummary(model *RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Category:    model.Category,
		Ingredients: recipe.NotLoaded{},
	}
}

// DayToModels converts a plan day to its slot row and additional rows
func DayToModels(d *mealplan.Day) (*MenuPlanModel, []MenuPlanAdditionalModel) {
	model := &MenuPlanModel{
		Date:        d.Date,
		BreakfastID: recipeID(d.Breakfast),
		LunchID:     recipeID(d.Lunch),
		DinnerID:    recipeID(d.Dinner),
		ExtraID:     recipeID(d.Extra),
	}

	additional := make([]MenuPlanAdditionalModel, 0, len(d.Additional))
	for i, r := range d.Additional {
		additional = append(additional, MenuPlanAdditionalModel{
			Date:     d.Date,
			Position: i,
			RecipeID: r.ID,
		})
	}
	return model, additional
}

func recipeID(r *recipe.Recipe) *uuid.UUID {
	if r == nil {
		return nil
	}
	id := r.ID
	return &id
}

// slotIDs lists the slot references of a row in slot order
func (m *MenuPlanModel) slotIDs() map[mealplan.Slot]*uuid.UUID {
	return map[mealplan.Slot]*uuid.UUID{
		mealplan.Breakfast: m.BreakfastID,
		mealplan.Lunch:     m.LunchID,
		mealplan.Dinner:    m.DinnerID,
		mealplan.Extra:     m.ExtraID,
	}
}
