// Package recipe holds the recipe model consumed by the planning engine
package recipe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Ingredient is one line of a recipe. Amount stays free text; only its
// leading numeral is meaningful, see ParseAmount.
type Ingredient struct {
	Name   string
	Amount string
	Unit   string
}

// Required returns the parsed required quantity
func (i Ingredient) Required() float64 {
	return ParseAmount(i.Amount)
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientNameMissing
	}
	return nil
}

// Ingredients is the ingredient list of a recipe in one of two states:
// NotLoaded when the list has not been fetched yet, or Loaded.
type Ingredients interface {
	isIngredients()
}

// NotLoaded marks a recipe whose ingredient list is not available
type NotLoaded struct{}

// Loaded is a fetched ingredient list
type Loaded []Ingredient

func (NotLoaded) isIngredients() {}
func (Loaded) isIngredients()    {}

// IngredientsFromList converts a stored or transported list. Collaborators
// send an empty list for recipes whose ingredients were not fetched, so an
// empty list becomes NotLoaded.
func IngredientsFromList(list []Ingredient) Ingredients {
	if len(list) == 0 {
		return NotLoaded{}
	}
	out := make(Loaded, len(list))
	copy(out, list)
	return out
}

// Recipe is the subset of a recipe the planner works with
type Recipe struct {
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Ingredients Ingredients
}

// NewRecipe creates a validated recipe with a fresh ID
func NewRecipe(title, description, category string, ingredients []Ingredient) (*Recipe, error) {
	r := &Recipe{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    category,
		Ingredients: IngredientsFromList(ingredients),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate validates the recipe
func (r *Recipe) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	if len(r.Title) > 200 {
		return ErrTitleTooLong
	}
	if len(r.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	list, _ := r.LoadedIngredients()
	for idx, ing := range list {
		if err := ing.Validate(); err != nil {
			return fmt.Errorf("ingredient %d: %w", idx+1, err)
		}
	}
	return nil
}

// LoadedIngredients returns the ingredient list and whether it is loaded.
// A nil Ingredients field counts as not loaded.
func (r Recipe) LoadedIngredients() ([]Ingredient, bool) {
	switch v := r.Ingredients.(type) {
	case Loaded:
		return v, true
	default:
		return nil, false
	}
}

// IsLoaded reports whether the ingredient list is available
func (r Recipe) IsLoaded() bool {
	_, ok := r.LoadedIngredients()
	return ok
}

// Summary returns a copy of the recipe without its ingredient list
func (r Recipe) Summary() Recipe {
	r.Ingredients = NotLoaded{}
	return r
}
