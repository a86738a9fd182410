package gorm

import (
	"context"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository implements the inventory repository interface using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ outbound.InventoryRepository = (*InventoryRepository)(nil)

// Load returns every stocked ingredient of a user
func (r *InventoryRepository) Load(ctx context.Context, userID string) (inventory.Inventory, error) {
	var models []UserIngredientModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models).Error; err != nil {
		return nil, err
	}

	inv := inventory.New()
	for _, m := range models {
		if m.Quantity <= 0 {
			continue
		}
		inv[m.Name] = inventory.Entry{Quantity: m.Quantity, UnitPrice: m.UnitPrice}
	}
	return inv, nil
}

// Save inserts or replaces one ingredient
func (r *InventoryRepository) Save(ctx context.Context, userID, name string, entry inventory.Entry) error {
	model := &UserIngredientModel{
		UserID:    userID,
		Name:      name,
		Quantity:  entry.Quantity,
		UnitPrice: entry.UnitPrice,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit_price", "updated_at"}),
	}).Create(model).Error
}

// Delete removes one ingredient. Removing an absent ingredient is not an error.
func (r *InventoryRepository) Delete(ctx context.Context, userID, name string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&UserIngredientModel{}).Error
}
