// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var units = []string{"г", "мл", "шт", "кг", "л"}

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Ingredient creates a random ingredient line
func (f *RecipeFactory) Ingredient() recipe.Ingredient {
	return recipe.Ingredient{
		Name:   f.faker.Noun(),
		Amount: fmt.Sprintf("%d", f.faker.Number(1, 500)),
		Unit:   units[f.faker.Number(0, len(units)-1)],
	}
}

// Recipe creates a random recipe with n ingredients
func (f *RecipeFactory) Recipe(n int) recipe.Recipe {
	b := NewRecipeBuilder().WithTitle(f.faker.Sentence(3))
	for i := 0; i < n; i++ {
		b.WithIngredient(f.Ingredient())
	}
	return b.Build()
}

// Inventory stocks a random subset of the ingredients of recipes
func (f *RecipeFactory) Inventory(recipes []recipe.Recipe) inventory.Inventory {
	inv := inventory.New()
	for _, r := range recipes {
		list, _ := r.LoadedIngredients()
		for _, ing := range list {
			if f.faker.Bool() {
				continue
			}
			inv[ing.Name] = inventory.Entry{
				Quantity:  float64(f.faker.Number(0, 600)),
				UnitPrice: float64(f.faker.Number(0, 200)),
			}
		}
	}
	return inv
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id          uuid.UUID
	title       string
	description string
	category    string
	ingredients []recipe.Ingredient
	summary     bool
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		id:          uuid.New(),
		title:       faker.Sentence(3),
		description: faker.Sentence(8),
		category:    "main",
	}
}

// WithID sets the recipe ID
func (rb *RecipeBuilder) WithID(id uuid.UUID) *RecipeBuilder {
	rb.id = id
	return rb
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.title = title
	return rb
}

// WithCategory sets the recipe category
func (rb *RecipeBuilder) WithCategory(category string) *RecipeBuilder {
	rb.category = category
	return rb
}

// WithIngredient appends an ingredient line
func (rb *RecipeBuilder) WithIngredient(ing recipe.Ingredient) *RecipeBuilder {
	rb.ingredients = append(rb.ingredients, ing)
	return rb
}

// With appends an ingredient line from its parts
func (rb *RecipeBuilder) With(name, amount, unit string) *RecipeBuilder {
	return rb.WithIngredient(recipe.Ingredient{Name: name, Amount: amount, Unit: unit})
}

// AsSummary builds the recipe without ingredients
func (rb *RecipeBuilder) AsSummary() *RecipeBuilder {
	rb.summary = true
	return rb
}

// Build creates the recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	r := recipe.Recipe{
		ID:          rb.id,
		Title:       rb.title,
		Description: rb.description,
		Category:    rb.category,
		Ingredients: recipe.IngredientsFromList(rb.ingredients),
	}
	if rb.summary {
		return r.Summary()
	}
	return r
}

// PlanBuilder provides a fluent interface for building test meal plans
type PlanBuilder struct {
	plan mealplan.Plan
	err  error
}

// NewPlanBuilder creates an empty plan builder
func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{plan: mealplan.New()}
}

// Slot places r in slot on date
func (pb *PlanBuilder) Slot(date string, slot mealplan.Slot, r recipe.Recipe) *PlanBuilder {
	if err := pb.plan.Assign(date, slot, r); err != nil && pb.err == nil {
		pb.err = err
	}
	return pb
}

// Additional appends r to the additional items of date
func (pb *PlanBuilder) Additional(date string, r recipe.Recipe) *PlanBuilder {
	if err := pb.plan.AddAdditional(date, r); err != nil && pb.err == nil {
		pb.err = err
	}
	return pb
}

// Build returns the plan. It panics on an invalid date, which is a test bug.
func (pb *PlanBuilder) Build() mealplan.Plan {
	if pb.err != nil {
		panic(pb.err)
	}
	return pb.plan
}

// DateAt returns the plan key of now shifted by days
func DateAt(now time.Time, days int) string {
	return mealplan.DateKey(now.AddDate(0, 0, days))
}
