package shopping

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/errors"
	"github.com/alchemorsel/planner/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type fakeLoader struct {
	full  map[uuid.UUID]recipe.Recipe
	calls int
}

func (f *fakeLoader) LoadIngredients(_ context.Context, recipes []recipe.Recipe) map[uuid.UUID]recipe.Recipe {
	f.calls++
	out := make(map[uuid.UUID]recipe.Recipe)
	for _, r := range recipes {
		if full, ok := f.full[r.ID]; ok {
			out[r.ID] = full
		}
	}
	return out
}

type ShoppingServiceTestSuite struct {
	suite.Suite
	plans     *testutils.MockMealPlanRepository
	inventory *testutils.MockInventoryRepository
	purchases *testutils.MockPurchaseRepository
	loader    *fakeLoader
	metrics   *testutils.MockMetricsRecorder
	service   *ShoppingService
	now       time.Time
	omelette  recipe.Recipe
}

func TestShoppingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingServiceTestSuite))
}

func (suite *ShoppingServiceTestSuite) SetupTest() {
	suite.plans = &testutils.MockMealPlanRepository{}
	suite.inventory = &testutils.MockInventoryRepository{}
	suite.purchases = &testutils.MockPurchaseRepository{}
	suite.metrics = testutils.NewMockMetricsRecorder()
	suite.now = time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	suite.omelette = testutils.NewRecipeBuilder().
		WithTitle("Омлет").
		With("Яйца", "3", "шт").
		With("Молоко", "100", "мл").
		Build()
	suite.loader = &fakeLoader{full: map[uuid.UUID]recipe.Recipe{suite.omelette.ID: suite.omelette}}

	suite.service = NewShoppingService(
		suite.plans,
		suite.inventory,
		suite.purchases,
		suite.loader,
		suite.metrics,
		Settings{UserID: "default", Grouping: shopping.GroupByName, Options: shopping.DefaultOptions()},
		zap.NewNop(),
	).WithClock(func() time.Time { return suite.now })
}

func (suite *ShoppingServiceTestSuite) tomorrowPlan() mealplan.Plan {
	return testutils.NewPlanBuilder().
		Slot("2025-03-11", mealplan.Breakfast, suite.omelette.Summary()).
		Build()
}

func (suite *ShoppingServiceTestSuite) TestList() {
	ctx := context.Background()

	suite.Run("Tomorrow_ShouldLoadIngredientsAndSubtractStock", func() {
		suite.SetupTest()
		suite.plans.On("FindRange", ctx, "2025-03-11", "2025-03-11").Return(suite.tomorrowPlan(), nil)
		suite.inventory.On("Load", ctx, "default").Return(inventory.Inventory{
			"Яйца": {Quantity: 1, UnitPrice: 12},
		}, nil)
		suite.purchases.On("ListPurchased", ctx, "default").Return([]outbound.PurchaseRecord{}, nil)

		list, err := suite.service.List(ctx, "tomorrow")

		suite.Require().NoError(err)
		suite.Equal("tomorrow", list.Window)
		suite.Equal("2025-03-11", list.Start)
		suite.Equal("2025-03-11", list.End)
		suite.Require().Len(list.Items, 2)

		suite.Equal("Молоко", list.Items[0].Name)
		suite.Equal(100.0, list.Items[0].NeededQuantity)
		suite.Equal(float64(shopping.DefaultUnitPrice), list.Items[0].UnitPrice)
		suite.Equal("Яйца", list.Items[1].Name)
		suite.Equal(2.0, list.Items[1].NeededQuantity)
		suite.Equal(24.0, list.Items[1].TotalCost)

		suite.Equal(5024.0, list.Total)
		suite.Equal(2, list.UnpurchasedCount)
		suite.Equal([]string{"tomorrow"}, suite.metrics.Lists)
	})

	suite.Run("PurchasedItems_ShouldBeExcludedFromTotal", func() {
		suite.SetupTest()
		suite.plans.On("FindRange", ctx, "2025-03-11", "2025-03-11").Return(suite.tomorrowPlan(), nil)
		suite.inventory.On("Load", ctx, "default").Return(inventory.New(), nil)
		suite.purchases.On("ListPurchased", ctx, "default").Return([]outbound.PurchaseRecord{
			{Window: shopping.Tomorrow, Item: "Молоко"},
			{Window: shopping.Week, Item: "Яйца"},
		}, nil)

		list, err := suite.service.List(ctx, "tomorrow")

		suite.Require().NoError(err)
		suite.Require().Len(list.Items, 2)
		suite.True(list.Items[0].Purchased)
		suite.False(list.Items[1].Purchased)
		suite.Equal(150.0, list.Total)
		suite.Equal(1, list.UnpurchasedCount)
	})

	suite.Run("LoaderMiss_ShouldSkipRecipe", func() {
		suite.SetupTest()
		suite.loader.full = map[uuid.UUID]recipe.Recipe{}
		suite.plans.On("FindRange", ctx, "2025-03-11", "2025-03-11").Return(suite.tomorrowPlan(), nil)
		suite.inventory.On("Load", ctx, "default").Return(inventory.New(), nil)
		suite.purchases.On("ListPurchased", ctx, "default").Return([]outbound.PurchaseRecord{}, nil)

		list, err := suite.service.List(ctx, "tomorrow")

		suite.Require().NoError(err)
		suite.Empty(list.Items)
		suite.Zero(list.Total)
	})

	suite.Run("Week_ShouldSpanEightDays", func() {
		suite.SetupTest()
		suite.plans.On("FindRange", ctx, "2025-03-10", "2025-03-17").Return(mealplan.New(), nil)
		suite.inventory.On("Load", ctx, "default").Return(inventory.New(), nil)
		suite.purchases.On("ListPurchased", ctx, "default").Return([]outbound.PurchaseRecord{}, nil)

		list, err := suite.service.List(ctx, "week")

		suite.Require().NoError(err)
		suite.Equal("2025-03-10", list.Start)
		suite.Equal("2025-03-17", list.End)
		suite.NotNil(list.Items)
	})

	suite.Run("UnknownWindow_ShouldFail", func() {
		suite.SetupTest()

		_, err := suite.service.List(ctx, "year")

		suite.Require().Error(err)
		suite.Equal(errors.CodeInvalidWindow, errors.GetCode(err))
		suite.plans.AssertNotCalled(suite.T(), "FindRange", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("PlanLoadError_ShouldReturnDatabaseError", func() {
		suite.SetupTest()
		suite.plans.On("FindRange", ctx, "2025-03-11", "2025-03-11").Return(nil, stderrors.New("disk"))

		_, err := suite.service.List(ctx, "tomorrow")

		suite.Require().Error(err)
		suite.Equal(errors.CodeDatabaseError, errors.GetCode(err))
	})
}

func (suite *ShoppingServiceTestSuite) TestTogglePurchased() {
	ctx := context.Background()

	setup := func() {
		suite.SetupTest()
		suite.plans.On("FindRange", ctx, "2025-03-11", "2025-03-11").Return(suite.tomorrowPlan(), nil)
		suite.inventory.On("Load", ctx, "default").Return(inventory.New(), nil)
		suite.purchases.On("ListPurchased", ctx, "default").Return([]outbound.PurchaseRecord{}, nil).Once()
	}

	suite.Run("Success_ShouldApplyAndPersist", func() {
		setup()
		suite.purchases.On("SetPurchased", ctx, "default", shopping.Tomorrow, "Молоко", true).Return(nil)

		res, err := suite.service.TogglePurchased(ctx, "tomorrow", "Молоко")

		suite.Require().NoError(err)
		suite.True(res.Purchased)
		suite.Equal(150.0, res.Total)
		suite.Equal(1, res.UnpurchasedCount)
		suite.Equal(1, suite.metrics.ToggleCount(OutcomeApplied))
		suite.purchases.AssertExpectations(suite.T())
	})

	suite.Run("SecondToggle_ShouldUnmark", func() {
		setup()
		suite.purchases.On("SetPurchased", ctx, "default", shopping.Tomorrow, "Молоко", true).Return(nil).Once()
		suite.purchases.On("SetPurchased", ctx, "default", shopping.Tomorrow, "Молоко", false).Return(nil).Once()

		_, err := suite.service.TogglePurchased(ctx, "tomorrow", "Молоко")
		suite.Require().NoError(err)
		res, err := suite.service.TogglePurchased(ctx, "tomorrow", "Молоко")

		suite.Require().NoError(err)
		suite.False(res.Purchased)
		suite.Equal(5150.0, res.Total)
		suite.Equal(2, res.UnpurchasedCount)
	})

	suite.Run("PersistFailure_ShouldRollBack", func() {
		setup()
		suite.purchases.On("SetPurchased", ctx, "default", shopping.Tomorrow, "Молоко", true).Return(stderrors.New("locked"))

		_, err := suite.service.TogglePurchased(ctx, "tomorrow", "Молоко")

		suite.Require().Error(err)
		suite.Equal(errors.CodePersistenceFailed, errors.GetCode(err))
		suite.Equal(1, suite.metrics.ToggleCount(OutcomeRolledBack))

		list, err := suite.service.List(ctx, "tomorrow")
		suite.Require().NoError(err)
		for _, it := range list.Items {
			suite.False(it.Purchased, it.Name)
		}
		suite.Equal(5150.0, list.Total)
	})

	suite.Run("WindowsAreIndependent", func() {
		setup()
		suite.plans.On("FindRange", ctx, "2025-03-10", "2025-03-17").Return(suite.tomorrowPlan(), nil)
		suite.purchases.On("SetPurchased", ctx, "default", shopping.Tomorrow, "Яйца", true).Return(nil)

		_, err := suite.service.TogglePurchased(ctx, "tomorrow", "Яйца")
		suite.Require().NoError(err)

		week, err := suite.service.List(ctx, "week")
		suite.Require().NoError(err)
		for _, it := range week.Items {
			suite.False(it.Purchased, it.Name)
		}
		suite.Equal(2, week.UnpurchasedCount)
	})

	suite.Run("EmptyItem_ShouldFailValidation", func() {
		suite.SetupTest()

		_, err := suite.service.TogglePurchased(ctx, "tomorrow", "")

		suite.Require().Error(err)
		suite.Equal(errors.CodeValidationFailed, errors.GetCode(err))
	})
}
