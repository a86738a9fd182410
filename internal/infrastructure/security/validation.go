// Package security provides request validation for the planner API
package security

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	apperrors "github.com/alchemorsel/planner/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ValidationService validates decoded request bodies
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a validator with the planner's custom rules
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New()

	// Report JSON field names instead of Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = validate.RegisterValidation("recipe_title", validateRecipeTitle)
	_ = validate.RegisterValidation("ingredient", validateIngredient)

	return &ValidationService{
		logger:    logger.Named("validation"),
		validator: validate,
	}
}

// ValidateStruct runs struct tag validation and returns a VALIDATION_FAILED error
func (v *ValidationService) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		v.logger.Warn("Unexpected validation failure", zap.Error(err))
		return apperrors.NewValidationError(err.Error())
	}

	details := make([]apperrors.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperrors.ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: message(e),
		})
	}

	return apperrors.NewValidationErrors(details)
}

func message(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "recipe_title":
		return "Recipe title must be 1-200 characters without control characters"
	case "ingredient":
		return "Invalid ingredient name"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// validateRecipeTitle checks rune length and rejects control characters
func validateRecipeTitle(fl validator.FieldLevel) bool {
	title := strings.TrimSpace(fl.Field().String())

	length := len([]rune(title))
	if length < 1 || length > 200 {
		return false
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return false
		}
	}

	return true
}

// validateIngredient checks ingredient names used as inventory and list keys
func validateIngredient(fl validator.FieldLevel) bool {
	ingredient := strings.TrimSpace(fl.Field().String())

	length := len([]rune(ingredient))
	if length < 1 || length > 200 {
		return false
	}

	dangerous := []string{"<", ">", "javascript:"}
	lower := strings.ToLower(ingredient)
	for _, danger := range dangerous {
		if strings.Contains(lower, danger) {
			return false
		}
	}

	for _, r := range ingredient {
		if unicode.IsControl(r) {
			return false
		}
	}

	return true
}
