package mealplan

import (
	"testing"

	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MealPlanTestSuite struct {
	suite.Suite
	plan     Plan
	porridge recipe.Recipe
	soup     recipe.Recipe
}

func TestMealPlanTestSuite(t *testing.T) {
	suite.Run(t, new(MealPlanTestSuite))
}

func (suite *MealPlanTestSuite) SetupTest() {
	suite.plan = New()
	suite.porridge = recipe.Recipe{ID: uuid.New(), Title: "Каша"}
	suite.soup = recipe.Recipe{ID: uuid.New(), Title: "Суп"}
}

func (suite *MealPlanTestSuite) TestAssignAndClear() {
	suite.Run("ClearingLastSlot_ShouldPruneDay", func() {
		require.NoError(suite.T(), suite.plan.Assign("2025-01-10", Breakfast, suite.porridge))

		require.NoError(suite.T(), suite.plan.Clear("2025-01-10", Breakfast))

		_, ok := suite.plan["2025-01-10"]
		assert.False(suite.T(), ok)
	})

	suite.Run("ClearingOneOfTwo_ShouldKeepDay", func() {
		require.NoError(suite.T(), suite.plan.Assign("2025-01-11", Breakfast, suite.porridge))
		require.NoError(suite.T(), suite.plan.Assign("2025-01-11", Dinner, suite.soup))

		require.NoError(suite.T(), suite.plan.Clear("2025-01-11", Breakfast))

		day, ok := suite.plan["2025-01-11"]
		require.True(suite.T(), ok)
		assert.Nil(suite.T(), day.Breakfast)
		assert.Equal(suite.T(), "Суп", day.Dinner.Title)
	})

	suite.Run("InvalidInput_ShouldFail", func() {
		assert.ErrorIs(suite.T(), suite.plan.Assign("10.01.2025", Lunch, suite.soup), ErrInvalidDate)
		assert.ErrorIs(suite.T(), suite.plan.Assign("2025-01-10", Slot("brunch"), suite.soup), ErrInvalidSlot)
	})
}

func (suite *MealPlanTestSuite) TestAdditional() {
	require.NoError(suite.T(), suite.plan.AddAdditional("2025-02-01", suite.soup))
	require.NoError(suite.T(), suite.plan.AddAdditional("2025-02-01", suite.porridge))

	require.NoError(suite.T(), suite.plan.RemoveAdditional("2025-02-01", 0))
	day := suite.plan["2025-02-01"]
	require.NotNil(suite.T(), day)
	assert.Equal(suite.T(), []recipe.Recipe{suite.porridge}, day.Additional)

	require.NoError(suite.T(), suite.plan.RemoveAdditional("2025-02-01", 0))
	assert.Empty(suite.T(), suite.plan)

	assert.ErrorIs(suite.T(), suite.plan.RemoveAdditional("2025-02-01", 0), ErrAdditionalOutOfRange)
}

func (suite *MealPlanTestSuite) TestRecipesOrderAndIDs() {
	require.NoError(suite.T(), suite.plan.Assign("2025-03-02", Dinner, suite.soup))
	require.NoError(suite.T(), suite.plan.Assign("2025-03-01", Extra, suite.porridge))
	require.NoError(suite.T(), suite.plan.Assign("2025-03-01", Breakfast, suite.soup))
	require.NoError(suite.T(), suite.plan.AddAdditional("2025-03-01", suite.porridge))

	titles := func(rs []recipe.Recipe) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Title)
		}
		return out
	}

	assert.Equal(suite.T(), []string{"Суп", "Каша", "Каша"}, titles(suite.plan["2025-03-01"].Recipes()))
	assert.Equal(suite.T(), []string{"2025-03-01", "2025-03-02"}, suite.plan.Dates())
	assert.Equal(suite.T(), []uuid.UUID{suite.soup.ID, suite.porridge.ID}, suite.plan.RecipeIDs())
}

func (suite *MealPlanTestSuite) TestPruneAndMap() {
	suite.plan["2025-04-01"] = &Day{Date: "2025-04-01"}
	require.NoError(suite.T(), suite.plan.Assign("2025-04-02", Lunch, suite.soup))

	suite.plan.Prune()
	assert.Equal(suite.T(), []string{"2025-04-02"}, suite.plan.Dates())

	mapped := suite.plan.Map(func(r recipe.Recipe) recipe.Recipe {
		r.Ingredients = recipe.Loaded{{Name: "Вода", Amount: "1", Unit: "л"}}
		return r
	})

	assert.True(suite.T(), mapped["2025-04-02"].Lunch.IsLoaded())
	assert.False(suite.T(), suite.plan["2025-04-02"].Lunch.IsLoaded())
}

func (suite *MealPlanTestSuite) TestParseSlot() {
	slot, err := ParseSlot("dinner")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Dinner, slot)

	_, err = ParseSlot("Dinner")
	assert.ErrorIs(suite.T(), err, ErrInvalidSlot)
}
