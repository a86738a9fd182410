package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/alchemorsel/planner/internal/ports/inbound"
	apperrors "github.com/alchemorsel/planner/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeHandlers serves the recipe catalogue
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	validator     Validator
	logger        *zap.Logger
}

// NewRecipeHandlers creates recipe handlers
func NewRecipeHandlers(recipeService inbound.RecipeService, validator Validator, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		validator:     validator,
		logger:        logger.Named("recipe-handlers"),
	}
}

// CreateRecipeRequest is the body of POST /recipes
type CreateRecipeRequest struct {
	Title       string              `json:"title" validate:"required,recipe_title"`
	Description string              `json:"description" validate:"max=2000"`
	Category    string              `json:"category" validate:"max=100"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"max=100,dive"`
}

// IngredientRequest is one ingredient line of a recipe
type IngredientRequest struct {
	Name   string `json:"name" validate:"required,ingredient"`
	Amount string `json:"amount" validate:"max=50"`
	Unit   string `json:"unit" validate:"max=50"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.RecipeQuery{
		Category: r.URL.Query().Get("category"),
	}

	var err error
	if query.Limit, err = intParam(r.URL.Query(), "limit"); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	if query.Offset, err = intParam(r.URL.Query(), "offset"); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	recipes, err := h.recipeService.ListRecipes(r.Context(), query)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, recipes, "")
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	cmd := inbound.CreateRecipeCommand{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Ingredients: make([]inbound.IngredientDTO, 0, len(req.Ingredients)),
	}
	for _, ing := range req.Ingredients {
		cmd.Ingredients = append(cmd.Ingredients, inbound.IngredientDTO{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}

	created, err := h.recipeService.CreateRecipe(r.Context(), cmd)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created, "Recipe created successfully")
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	found, err := h.recipeService.GetRecipe(r.Context(), id)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, found, "")
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, nil, "Recipe deleted successfully")
}

// Recommend handles GET /api/v1/recipes/recommendations
func (h *RecipeHandlers) Recommend(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	recs, err := h.recipeService.Recommend(r.Context(), limit)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, recs, "")
}

// Catalog handles GET /api/v1/ingredients/catalog
func (h *RecipeHandlers) Catalog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.recipeService.Catalog(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, entries, "")
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid "+name).WithMetadata(name, raw)
	}
	return id, nil
}

// pathParam returns the decoded path parameter. chi matches on RawPath only
// when the request carries one, otherwise the segment is already decoded.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// intParam parses an optional non-negative integer query parameter
func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewBadRequestError("Invalid "+name).WithMetadata(name, raw)
	}
	return n, nil
}
