// Package gorm provides GORM model definitions for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null;index"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50);index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	// Relationships
	Ingredients []IngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// IngredientModel is one ingredient line of a recipe. Position keeps the
// author's order.
type IngredientModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"type:varchar(100);not null;index"`
	Amount   string    `gorm:"type:varchar(50)"`
	Unit     string    `gorm:"type:varchar(20)"`
}

// TableName specifies the table name for IngredientModel
func (IngredientModel) TableName() string {
	return "recipe_ingredients"
}

// MenuPlanModel holds the named slots of one date
type MenuPlanModel struct {
	Date        string     `gorm:"column:plan_date;type:varchar(10);primaryKey"`
	BreakfastID *uuid.UUID `gorm:"type:char(36);index"`
	LunchID     *uuid.UUID `gorm:"type:char(36);index"`
	DinnerID    *uuid.UUID `gorm:"type:char(36);index"`
	ExtraID     *uuid.UUID `gorm:"type:char(36);index"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for MenuPlanModel
func (MenuPlanModel) TableName() string {
	return "menu_plans"
}

// MenuPlanAdditionalModel is one additional recipe of a date
type MenuPlanAdditionalModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	Date     string    `gorm:"column:plan_date;type:varchar(10);not null;index"`
	Position int       `gorm:"not null"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;index"`
}

// TableName specifies the table name for MenuPlanAdditionalModel
func (MenuPlanAdditionalModel) TableName() string {
	return "menu_plan_additional"
}

// UserIngredientModel is the on-hand stock of one ingredient
type UserIngredientModel struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	UserID    string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_ingredient"`
	Name      string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_ingredient"`
	Quantity  float64 `gorm:"not null;default:0"`
	UnitPrice float64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName specifies the table name for UserIngredientModel
func (UserIngredientModel) TableName() string {
	return "user_ingredients"
}

// PurchasedItemModel marks an item bought within a shopping window
type PurchasedItemModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_purchased_item"`
	Window    string `gorm:"column:window_key;type:varchar(16);not null;uniqueIndex:idx_purchased_item"`
	ItemName  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_purchased_item"`
	CreatedAt time.Time
}

// TableName specifies the table name for PurchasedItemModel
func (PurchasedItemModel) TableName() string {
	return "purchased_items"
}

// AllModels lists every model for migration
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&IngredientModel{},
		&MenuPlanModel{},
		&MenuPlanAdditionalModel{},
		&UserIngredientModel{},
		&PurchasedItemModel{},
	}
}
