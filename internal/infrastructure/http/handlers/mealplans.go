package handlers

import (
	"net/http"
	"strconv"

	"github.com/alchemorsel/planner/internal/ports/inbound"
	apperrors "github.com/alchemorsel/planner/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MealPlanHandlers serves the menu plan
type MealPlanHandlers struct {
	mealPlanService inbound.MealPlanService
	validator       Validator
	logger          *zap.Logger
}

// NewMealPlanHandlers creates menu plan handlers
func NewMealPlanHandlers(mealPlanService inbound.MealPlanService, validator Validator, logger *zap.Logger) *MealPlanHandlers {
	return &MealPlanHandlers{
		mealPlanService: mealPlanService,
		validator:       validator,
		logger:          logger.Named("mealplan-handlers"),
	}
}

// RecipeRefRequest names the recipe to schedule
type RecipeRefRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
}

// GetRange handles GET /api/v1/menu-plans?start=&end=
func (h *MealPlanHandlers) GetRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		WriteError(w, r, h.logger, apperrors.NewBadRequestError("start and end are required"))
		return
	}

	days, err := h.mealPlanService.GetRange(r.Context(), start, end)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, days, "")
}

// AssignSlot handles PUT /api/v1/menu-plans/{date}/{slot}
func (h *MealPlanHandlers) AssignSlot(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := h.recipeRef(w, r)
	if !ok {
		return
	}

	day, err := h.mealPlanService.AssignSlot(r.Context(), inbound.AssignSlotCommand{
		Date:     chi.URLParam(r, "date"),
		Slot:     chi.URLParam(r, "slot"),
		RecipeID: recipeID,
	})
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, day, "")
}

// ClearSlot handles DELETE /api/v1/menu-plans/{date}/{slot}
func (h *MealPlanHandlers) ClearSlot(w http.ResponseWriter, r *http.Request) {
	day, err := h.mealPlanService.ClearSlot(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "slot"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, day, dayMessage(day))
}

// AddAdditional handles POST /api/v1/menu-plans/{date}/additional
func (h *MealPlanHandlers) AddAdditional(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := h.recipeRef(w, r)
	if !ok {
		return
	}

	day, err := h.mealPlanService.AddAdditional(r.Context(), chi.URLParam(r, "date"), recipeID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, day, "")
}

// RemoveAdditional handles DELETE /api/v1/menu-plans/{date}/additional/{index}
func (h *MealPlanHandlers) RemoveAdditional(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, r, h.logger, apperrors.NewBadRequestError("Invalid index").WithMetadata("index", raw))
		return
	}

	day, err := h.mealPlanService.RemoveAdditional(r.Context(), chi.URLParam(r, "date"), index)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, day, dayMessage(day))
}

// DeleteDay handles DELETE /api/v1/menu-plans/{date}
func (h *MealPlanHandlers) DeleteDay(w http.ResponseWriter, r *http.Request) {
	if err := h.mealPlanService.DeleteDay(r.Context(), chi.URLParam(r, "date")); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, nil, "Day deleted")
}

func (h *MealPlanHandlers) recipeRef(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req RecipeRefRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return uuid.Nil, false
	}
	return uuid.MustParse(req.RecipeID), true
}

// dayMessage reports when a mutation left the day empty
func dayMessage(day *inbound.DayDTO) string {
	if day.Pruned {
		return "Day is empty and was removed"
	}
	return ""
}
