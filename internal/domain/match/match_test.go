package match

import (
	"testing"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MatchTestSuite struct {
	suite.Suite
	pancakes recipe.Recipe
}

func TestMatchTestSuite(t *testing.T) {
	suite.Run(t, new(MatchTestSuite))
}

func (suite *MatchTestSuite) SetupTest() {
	suite.pancakes = recipe.Recipe{
		Title: "Блины",
		Ingredients: recipe.Loaded{
			{Name: "Мука", Amount: "200", Unit: "г"},
			{Name: "Яйца", Amount: "2 шт", Unit: "шт"},
			{Name: "Молоко", Amount: "500", Unit: "мл"},
		},
	}
}

func (suite *MatchTestSuite) TestMatchRecipe() {
	suite.Run("PartialCoverage_ShouldRoundPercent", func() {
		inv := inventory.Inventory{
			"Мука": {Quantity: 1000, UnitPrice: 1},
			"Яйца": {Quantity: 1, UnitPrice: 10},
		}

		res := MatchRecipe(suite.pancakes, inv)

		assert.Equal(suite.T(), 1, res.MatchingCount)
		assert.Equal(suite.T(), 3, res.TotalCount)
		assert.Equal(suite.T(), 33, res.MatchPercent)
		assert.Equal(suite.T(), []string{"Яйца", "Молоко"}, res.Missing)
	})

	suite.Run("ExactQuantity_ShouldSatisfy", func() {
		inv := inventory.Inventory{
			"Мука":   {Quantity: 200},
			"Яйца":   {Quantity: 2},
			"Молоко": {Quantity: 500},
		}

		res := MatchRecipe(suite.pancakes, inv)

		assert.Equal(suite.T(), 100, res.MatchPercent)
		assert.Empty(suite.T(), res.Missing)
	})

	suite.Run("TwoOfThree_ShouldRoundUp", func() {
		inv := inventory.Inventory{
			"Мука": {Quantity: 200},
			"Яйца": {Quantity: 2},
		}

		res := MatchRecipe(suite.pancakes, inv)

		assert.Equal(suite.T(), 67, res.MatchPercent)
	})

	suite.Run("DescriptiveAmount_ShouldNeedOnlyPresence", func() {
		r := recipe.Recipe{Title: "Салат", Ingredients: recipe.Loaded{{Name: "Соль", Amount: "по вкусу"}}}

		absent := MatchRecipe(r, inventory.New())
		present := MatchRecipe(r, inventory.Inventory{"Соль": {Quantity: 1}})

		assert.Equal(suite.T(), 0, absent.MatchPercent)
		assert.Equal(suite.T(), []string{"Соль"}, absent.Missing)
		assert.Equal(suite.T(), 100, present.MatchPercent)
	})

	suite.Run("NotLoaded_ShouldScoreZero", func() {
		r := recipe.Recipe{Title: "Пусто", Ingredients: recipe.NotLoaded{}}

		res := MatchRecipe(r, inventory.Inventory{"Мука": {Quantity: 1}})

		assert.Equal(suite.T(), 0, res.MatchPercent)
		assert.Equal(suite.T(), 0, res.TotalCount)
	})

	suite.Run("LoadedButEmpty_ShouldScoreZero", func() {
		r := recipe.Recipe{Title: "Вода", Ingredients: recipe.Loaded{}}

		res := MatchRecipe(r, inventory.New())

		assert.Equal(suite.T(), 0, res.MatchPercent)
	})
}

func (suite *MatchTestSuite) TestMatchPercentIsMonotonic() {
	inv := inventory.Inventory{"Мука": {Quantity: 50, UnitPrice: 1}}
	previous := MatchRecipe(suite.pancakes, inv).MatchPercent

	steps := []struct {
		name  string
		delta float64
	}{
		{"Мука", 100}, {"Мука", 100}, {"Молоко", 0}, {"Яйца", 1}, {"Яйца", 5},
	}
	for _, step := range steps {
		if _, ok := inv.Get(step.name); ok {
			inv.Adjust(step.name, step.delta)
		} else {
			_, err := inv.Upsert(step.name, step.delta+1, 1)
			require.NoError(suite.T(), err)
		}

		current := MatchRecipe(suite.pancakes, inv).MatchPercent
		assert.GreaterOrEqual(suite.T(), current, previous)
		previous = current
	}
}

func (suite *MatchTestSuite) TestRecommend() {
	omelette := recipe.Recipe{Title: "Омлет", Ingredients: recipe.Loaded{
		{Name: "Яйца", Amount: "3", Unit: "шт"},
	}}
	tea := recipe.Recipe{Title: "Чай", Ingredients: recipe.NotLoaded{}}
	soup := recipe.Recipe{Title: "Суп", Ingredients: recipe.Loaded{
		{Name: "Картофель", Amount: "300", Unit: "г"},
	}}
	inv := inventory.Inventory{
		"Яйца": {Quantity: 6},
		"Мука": {Quantity: 500},
	}

	recs := Recommend([]recipe.Recipe{suite.pancakes, tea, soup, omelette}, inv)

	require.Len(suite.T(), recs, 2)
	assert.Equal(suite.T(), "Омлет", recs[0].Recipe.Title)
	assert.Equal(suite.T(), 100, recs[0].Result.MatchPercent)
	assert.Equal(suite.T(), "Блины", recs[1].Recipe.Title)
	assert.Equal(suite.T(), 67, recs[1].Result.MatchPercent)
}
