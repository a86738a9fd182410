package handlers

import (
	"net/http"

	"github.com/alchemorsel/planner/internal/ports/inbound"
	"go.uber.org/zap"
)

// InventoryHandlers serves the on-hand ingredient stock
type InventoryHandlers struct {
	inventoryService inbound.InventoryService
	validator        Validator
	logger           *zap.Logger
}

// NewInventoryHandlers creates inventory handlers
func NewInventoryHandlers(inventoryService inbound.InventoryService, validator Validator, logger *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{
		inventoryService: inventoryService,
		validator:        validator,
		logger:           logger.Named("inventory-handlers"),
	}
}

// StockRequest is the body of PUT /inventory/{name}
type StockRequest struct {
	Quantity *float64 `json:"quantity" validate:"required,gte=0"`
	Price    float64  `json:"price" validate:"gte=0"`
}

// BatchItemRequest is one entry of POST /inventory/batch
type BatchItemRequest struct {
	Name     string   `json:"name" validate:"required,ingredient"`
	Quantity *float64 `json:"quantity" validate:"required,gte=0"`
	Price    float64  `json:"price" validate:"gte=0"`
}

// BatchRequest is the body of POST /inventory/batch
type BatchRequest struct {
	Items []BatchItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// AdjustRequest is the body of POST /inventory/{name}/adjust
type AdjustRequest struct {
	Delta float64 `json:"delta"`
}

// PriceRequest is the body of PUT /inventory/{name}/price
type PriceRequest struct {
	Price *float64 `json:"price" validate:"required"`
}

// ToggleRequest is the body of POST /inventory/toggle
type ToggleRequest struct {
	Name string `json:"name" validate:"required,ingredient"`
	Unit string `json:"unit" validate:"max=50"`
}

// List handles GET /api/v1/inventory
func (h *InventoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.List(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, items, "")
}

// Upsert handles PUT /api/v1/inventory/{name}
func (h *InventoryHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req StockRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	item, err := h.inventoryService.Upsert(r.Context(), inbound.UpsertIngredientCommand{
		Name:     pathParam(r, "name"),
		Quantity: *req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, "")
}

// Batch handles POST /api/v1/inventory/batch
func (h *InventoryHandlers) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	cmds := make([]inbound.UpsertIngredientCommand, 0, len(req.Items))
	for _, item := range req.Items {
		cmds = append(cmds, inbound.UpsertIngredientCommand{
			Name:     item.Name,
			Quantity: *item.Quantity,
			Price:    item.Price,
		})
	}

	items, err := h.inventoryService.BatchUpsert(r.Context(), cmds)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, items, "")
}

// Adjust handles POST /api/v1/inventory/{name}/adjust
func (h *InventoryHandlers) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	item, err := h.inventoryService.Adjust(r.Context(), pathParam(r, "name"), req.Delta)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, "")
}

// SetPrice handles PUT /api/v1/inventory/{name}/price
func (h *InventoryHandlers) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	item, err := h.inventoryService.SetPrice(r.Context(), pathParam(r, "name"), *req.Price)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, "")
}

// Toggle handles POST /api/v1/inventory/toggle
func (h *InventoryHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	item, err := h.inventoryService.Toggle(r.Context(), req.Name, req.Unit)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, "")
}

// Remove handles DELETE /api/v1/inventory/{name}
func (h *InventoryHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.Remove(r.Context(), pathParam(r, "name")); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, nil, "Ingredient removed")
}
