package gorm

import (
	"context"

	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{db: db}
}

var _ outbound.MealPlanRepository = (*MealPlanRepository)(nil)

// FindRange loads every day between from and to inclusive. Slots pointing at
// deleted recipes are dropped and so are days left empty.
func (r *MealPlanRepository) FindRange(ctx context.Context, from, to string) (mealplan.Plan, error) {
	db := r.db.WithContext(ctx)

	var rows []MenuPlanModel
	if err := db.Where("plan_date BETWEEN ? AND ?", from, to).Order("plan_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	var additional []MenuPlanAdditionalModel
	if err := db.Where("plan_date BETWEEN ? AND ?", from, to).
		Order("plan_date ASC").Order("position ASC").
		Find(&additional).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	collect := func(id *uuid.UUID) {
		if id == nil {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	for i := range rows {
		for _, id := range rows[i].slotIDs() {
			collect(id)
		}
	}
	for i := range additional {
		collect(&additional[i].RecipeID)
	}

	byID, err := summaries(db, ids)
	if err != nil {
		return nil, err
	}

	plan := mealplan.New()
	for i := range rows {
		for slot, id := range rows[i].slotIDs() {
			if id == nil {
				continue
			}
			if rec, ok := byID[*id]; ok {
				if err := plan.Assign(rows[i].Date, slot, rec); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, a := range additional {
		if rec, ok := byID[a.RecipeID]; ok {
			if err := plan.AddAdditional(a.Date, rec); err != nil {
				return nil, err
			}
		}
	}

	plan.Prune()
	return plan, nil
}

// SaveDay replaces the stored state of day
func (r *MealPlanRepository) SaveDay(ctx context.Context, day *mealplan.Day) error {
	model, additional := DayToModels(day)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plan_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"breakfast_id", "lunch_id", "dinner_id", "extra_id", "updated_at"}),
		}).Create(model).Error
		if err != nil {
			return err
		}

		if err := tx.Delete(&MenuPlanAdditionalModel{}, "plan_date = ?", day.Date).Error; err != nil {
			return err
		}
		if len(additional) == 0 {
			return nil
		}
		return tx.Create(&additional).Error
	})
}

// DeleteDay removes the slots and additional items of date
func (r *MealPlanRepository) DeleteDay(ctx context.Context, date string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&MenuPlanAdditionalModel{}, "plan_date = ?", date).Error; err != nil {
			return err
		}
		return tx.Delete(&MenuPlanModel{}, "plan_date = ?", date).Error
	})
}
