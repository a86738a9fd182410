package handlers

import (
	"net/http"

	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShoppingHandlers serves windowed shopping lists
type ShoppingHandlers struct {
	shoppingService inbound.ShoppingService
	logger          *zap.Logger
}

// NewShoppingHandlers creates shopping handlers
func NewShoppingHandlers(shoppingService inbound.ShoppingService, logger *zap.Logger) *ShoppingHandlers {
	return &ShoppingHandlers{
		shoppingService: shoppingService,
		logger:          logger.Named("shopping-handlers"),
	}
}

// List handles GET /api/v1/shopping/{window}
func (h *ShoppingHandlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.shoppingService.List(r.Context(), chi.URLParam(r, "window"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, list, "")
}

// TogglePurchased handles POST /api/v1/shopping/{window}/items/{name}/toggle
func (h *ShoppingHandlers) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	result, err := h.shoppingService.TogglePurchased(r.Context(), chi.URLParam(r, "window"), pathParam(r, "name"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, result, "")
}
