package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired         = errors.New("recipe title is required")
	ErrTitleTooLong          = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionTooLong    = errors.New("recipe description must not exceed 2000 characters")
	ErrIngredientNameMissing = errors.New("ingredient name is required")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
