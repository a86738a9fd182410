// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/alchemorsel/planner/internal/domain/recipe"
	gormModels "github.com/alchemorsel/planner/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// ParseLogLevel maps a config value to a GORM log level
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel, autoMigrate bool) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = MemoryPath
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dbPath == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if autoMigrate {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

type seedIngredient struct {
	name, amount, unit string
}

type seedRecipe struct {
	title, description, category string
	ingredients                  []seedIngredient
}

var demoRecipes = []seedRecipe{
	{
		title:       "Омлет с молоком",
		description: "Пышный омлет на сковороде",
		category:    "breakfast",
		ingredients: []seedIngredient{
			{"Яйца", "3", "шт"},
			{"Молоко", "100", "мл"},
			{"Соль", "2", "г"},
		},
	},
	{
		title:       "Блины",
		description: "Тонкие блины на молоке",
		category:    "breakfast",
		ingredients: []seedIngredient{
			{"Мука", "200", "г"},
			{"Молоко", "500", "мл"},
			{"Яйца", "2", "шт"},
			{"Сахар", "30", "г"},
		},
	},
	{
		title:       "Борщ",
		description: "Классический борщ со сметаной",
		category:    "soup",
		ingredients: []seedIngredient{
			{"Свёкла", "2", "шт"},
			{"Картофель", "400", "г"},
			{"Капуста", "300", "г"},
			{"Морковь", "1", "шт"},
			{"Сметана", "100", "г"},
		},
	},
	{
		title:       "Гречка с грибами",
		description: "Гречневая каша с жареными шампиньонами",
		category:    "main",
		ingredients: []seedIngredient{
			{"Гречка", "200", "г"},
			{"Шампиньоны", "250", "г"},
			{"Лук", "1", "шт"},
		},
	},
}

// SeedDatabase populates an empty database with demo recipes
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	// Check if data already exists
	var count int64
	if err := db.WithContext(ctx).Model(&gormModels.RecipeModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		return nil // Already seeded
	}

	repo := gormModels.NewRecipeRepository(db)
	for _, seed := range demoRecipes {
		ingredients := make([]recipe.Ingredient, 0, len(seed.ingredients))
		for _, ing := range seed.ingredients {
			ingredients = append(ingredients, recipe.Ingredient{Name: ing.name, Amount: ing.amount, Unit: ing.unit})
		}

		entity, err := recipe.NewRecipe(seed.title, seed.description, seed.category, ingredients)
		if err != nil {
			return fmt.Errorf("invalid demo recipe %q: %w", seed.title, err)
		}
		if err := repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("failed to create demo recipe: %w", err)
		}
	}

	return nil
}
