package gorm

import (
	"context"

	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseRepository implements the purchase repository interface using GORM
type PurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

var _ outbound.PurchaseRepository = (*PurchaseRepository)(nil)

// ListPurchased returns the purchased items of a user across windows.
// Rows naming an unknown window are ignored.
func (r *PurchaseRepository) ListPurchased(ctx context.Context, userID string) ([]outbound.PurchaseRecord, error) {
	var models []PurchasedItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("window_key ASC").Order("item_name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]outbound.PurchaseRecord, 0, len(models))
	for _, m := range models {
		w, err := shopping.ParseWindow(m.Window)
		if err != nil {
			continue
		}
		records = append(records, outbound.PurchaseRecord{Window: w, Item: m.ItemName})
	}
	return records, nil
}

// SetPurchased marks or unmarks item in window
func (r *PurchaseRepository) SetPurchased(ctx context.Context, userID string, w shopping.Window, item string, purchased bool) error {
	db := r.db.WithContext(ctx)
	if !purchased {
		return db.Where("user_id = ? AND window_key = ? AND item_name = ?", userID, string(w), item).
			Delete(&PurchasedItemModel{}).Error
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&PurchasedItemModel{
		UserID:   userID,
		Window:   string(w),
		ItemName: item,
	}).Error
}
