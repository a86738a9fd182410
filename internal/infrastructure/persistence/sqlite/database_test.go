package sqlite

import (
	"context"
	"testing"

	gormModels "github.com/alchemorsel/planner/internal/infrastructure/persistence/gorm"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func (suite *DatabaseTestSuite) SetupTest() {
	db, err := SetupDatabase("", logger.Silent, true)
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *DatabaseTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (suite *DatabaseTestSuite) TestSetupDatabase_ShouldMigrateAllTables() {
	for _, table := range []string{
		"recipes", "recipe_ingredients", "menu_plans",
		"menu_plan_additional", "user_ingredients", "purchased_items",
	} {
		suite.True(suite.db.Migrator().HasTable(table), table)
	}
}

func (suite *DatabaseTestSuite) TestSeedDatabase_ShouldRunOnce() {
	ctx := context.Background()

	suite.Require().NoError(SeedDatabase(ctx, suite.db))
	suite.Require().NoError(SeedDatabase(ctx, suite.db))

	var recipes, ingredients int64
	suite.Require().NoError(suite.db.Model(&gormModels.RecipeModel{}).Count(&recipes).Error)
	suite.Require().NoError(suite.db.Model(&gormModels.IngredientModel{}).Count(&ingredients).Error)

	suite.Equal(int64(len(demoRecipes)), recipes)
	suite.Equal(int64(15), ingredients)
}

func (suite *DatabaseTestSuite) TestParseLogLevel() {
	suite.Equal(logger.Silent, ParseLogLevel("silent"))
	suite.Equal(logger.Info, ParseLogLevel("DEBUG"))
	suite.Equal(logger.Warn, ParseLogLevel(""))
}
