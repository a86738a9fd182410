// Package inventory provides the application layer for on-hand ingredients
package inventory

import (
	"context"
	"sync"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/errors"
	"go.uber.org/zap"
)

// InventoryService implements the inventory use cases. Each mutation loads
// a fresh snapshot, applies the domain rule and writes back the one entry
// it changed. Mutations are serialized.
type InventoryService struct {
	mu     sync.Mutex
	repo   outbound.InventoryRepository
	userID string
	logger *zap.Logger
}

var _ inbound.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(repo outbound.InventoryRepository, userID string, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		repo:   repo,
		userID: userID,
		logger: logger.Named("inventory-service"),
	}
}

// List returns every stocked ingredient ordered by name
func (s *InventoryService) List(ctx context.Context) ([]inbound.InventoryItemDTO, error) {
	inv, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]inbound.InventoryItemDTO, 0, len(inv))
	for _, name := range inv.Names() {
		out = append(out, itemDTO(name, inv[name], true))
	}
	return out, nil
}

// Upsert sets quantity and price. A zero quantity removes the ingredient.
func (s *InventoryService) Upsert(ctx context.Context, cmd inbound.UpsertIngredientCommand) (*inbound.InventoryItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	present, err := inv.Upsert(cmd.Name, cmd.Quantity, cmd.Price)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}

	if err := s.persist(ctx, inv, cmd.Name, present); err != nil {
		return nil, err
	}

	s.logger.Info("Ingredient stock updated",
		zap.String("name", cmd.Name),
		zap.Float64("quantity", cmd.Quantity),
		zap.Float64("price", cmd.Price),
	)

	dto := itemDTO(cmd.Name, inv[cmd.Name], present)
	return &dto, nil
}

// BatchUpsert applies several upserts in order
func (s *InventoryService) BatchUpsert(ctx context.Context, cmds []inbound.UpsertIngredientCommand) ([]inbound.InventoryItemDTO, error) {
	out := make([]inbound.InventoryItemDTO, 0, len(cmds))
	for _, cmd := range cmds {
		dto, err := s.Upsert(ctx, cmd)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// Adjust changes the quantity by delta, clamping at zero
func (s *InventoryService) Adjust(ctx context.Context, name string, delta float64) (*inbound.InventoryItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := inv.Get(name); !ok {
		return nil, errors.NewNotFoundError("Ingredient").WithMetadata("name", name)
	}

	entry, present := inv.Adjust(name, delta)
	if err := s.persist(ctx, inv, name, present); err != nil {
		return nil, err
	}

	dto := itemDTO(name, entry, present)
	return &dto, nil
}

// SetPrice changes the unit price, clamping at zero
func (s *InventoryService) SetPrice(ctx context.Context, name string, price float64) (*inbound.InventoryItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := inv.SetPrice(name, price)
	if !ok {
		return nil, errors.NewNotFoundError("Ingredient").WithMetadata("name", name)
	}
	if err := s.persist(ctx, inv, name, true); err != nil {
		return nil, err
	}

	dto := itemDTO(name, entry, true)
	return &dto, nil
}

// Toggle adds the ingredient with default stock or removes it
func (s *InventoryService) Toggle(ctx context.Context, name, unit string) (*inbound.InventoryItemDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	entry, present, err := inv.Toggle(name, unit)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithCause(err)
	}
	if err := s.persist(ctx, inv, name, present); err != nil {
		return nil, err
	}

	s.logger.Info("Ingredient toggled",
		zap.String("name", name),
		zap.Bool("present", present),
	)

	dto := itemDTO(name, entry, present)
	return &dto, nil
}

// Remove deletes the ingredient
func (s *InventoryService) Remove(ctx context.Context, name string) error {
	if name == "" {
		return errors.NewValidationError(inventory.ErrNameRequired.Error())
	}
	if err := s.repo.Delete(ctx, s.userID, name); err != nil {
		return errors.NewDatabaseError("delete ingredient", err)
	}
	return nil
}

func (s *InventoryService) snapshot(ctx context.Context) (inventory.Inventory, error) {
	inv, err := s.repo.Load(ctx, s.userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load inventory", err)
	}
	if inv == nil {
		inv = inventory.New()
	}
	return inv, nil
}

func (s *InventoryService) persist(ctx context.Context, inv inventory.Inventory, name string, present bool) error {
	var err error
	if present {
		err = s.repo.Save(ctx, s.userID, name, inv[name])
	} else {
		err = s.repo.Delete(ctx, s.userID, name)
	}
	if err != nil {
		s.logger.Error("Failed to persist ingredient",
			zap.String("name", name),
			zap.Bool("present", present),
			zap.Error(err),
		)
		return errors.NewDatabaseError("save ingredient", err)
	}
	return nil
}

func itemDTO(name string, e inventory.Entry, present bool) inbound.InventoryItemDTO {
	return inbound.InventoryItemDTO{
		Name:      name,
		Quantity:  e.Quantity,
		UnitPrice: e.UnitPrice,
		Present:   present,
	}
}
