package apiserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/planner/internal/domain/shopping"
	"github.com/alchemorsel/planner/internal/infrastructure/config"
	"github.com/alchemorsel/planner/internal/infrastructure/monitoring"
	"github.com/alchemorsel/planner/internal/infrastructure/security"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	apperrors "github.com/alchemorsel/planner/pkg/errors"
	"github.com/alchemorsel/planner/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Message string `json:"message"`
}

type APIServerTestSuite struct {
	suite.Suite
	cfg       *config.Config
	recipes   *testutils.MockRecipeService
	inventory *testutils.MockInventoryService
	plans     *testutils.MockMealPlanService
	shopping  *testutils.MockShoppingService
	handler   http.Handler
}

func TestAPIServerTestSuite(t *testing.T) {
	suite.Run(t, new(APIServerTestSuite))
}

func (suite *APIServerTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		App: config.AppConfig{Name: "planner", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:           8080,
			RequestTimeout: 5 * time.Second,
		},
		Monitoring: config.MonitoringConfig{MetricsEnabled: true, MetricsPath: "/metrics"},
	}
	suite.recipes = new(testutils.MockRecipeService)
	suite.inventory = new(testutils.MockInventoryService)
	suite.plans = new(testutils.MockMealPlanService)
	suite.shopping = new(testutils.MockShoppingService)
	suite.handler = suite.newServer().Handler()
}

func (suite *APIServerTestSuite) TearDownTest() {
	suite.recipes.AssertExpectations(suite.T())
	suite.inventory.AssertExpectations(suite.T())
	suite.plans.AssertExpectations(suite.T())
	suite.shopping.AssertExpectations(suite.T())
}

func (suite *APIServerTestSuite) newServer() *APIServer {
	logger := zap.NewNop()
	return NewAPIServer(
		suite.cfg,
		logger,
		Services{
			Recipes:   suite.recipes,
			Inventory: suite.inventory,
			MealPlans: suite.plans,
			Shopping:  suite.shopping,
		},
		security.NewValidationService(logger),
		monitoring.NewMetricsCollector(logger),
		nil,
	)
}

func (suite *APIServerTestSuite) do(method, target, body string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	suite.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (suite *APIServerTestSuite) TestHealth() {
	rec, env := suite.do(http.MethodGet, "/health", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.True(env.Success)
	suite.Contains(string(env.Data), `"status":"healthy"`)
}

func (suite *APIServerTestSuite) TestMetricsEndpoint() {
	suite.do(http.MethodGet, "/health", "")

	rec, _ := suite.do(http.MethodGet, "/metrics", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "planner_http_requests_total")
}

func (suite *APIServerTestSuite) TestRecipes() {
	suite.Run("Create_ShouldReturnCreated", func() {
		id := uuid.New()
		suite.recipes.On("CreateRecipe", mock.Anything, inbound.CreateRecipeCommand{
			Title:       "Омлет",
			Category:    "Завтрак",
			Ingredients: []inbound.IngredientDTO{{Name: "Яйца", Amount: "3", Unit: "шт"}},
		}).Return(&inbound.RecipeDTO{ID: id, Title: "Омлет"}, nil).Once()

		rec, env := suite.do(http.MethodPost, "/api/v1/recipes",
			`{"title":"Омлет","category":"Завтрак","ingredients":[{"name":"Яйца","amount":"3","unit":"шт"}]}`)

		suite.Equal(http.StatusCreated, rec.Code)
		suite.True(env.Success)
		suite.Contains(string(env.Data), id.String())
	})

	suite.Run("MissingTitle_ShouldFailValidation", func() {
		rec, env := suite.do(http.MethodPost, "/api/v1/recipes", `{"title":""}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.False(env.Success)
		suite.Require().NotNil(env.Error)
		suite.Equal(string(apperrors.CodeValidationFailed), env.Error.Code)
	})

	suite.Run("UnknownField_ShouldBeBadRequest", func() {
		rec, env := suite.do(http.MethodPost, "/api/v1/recipes", `{"title":"Омлет","rating":5}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal(string(apperrors.CodeBadRequest), env.Error.Code)
	})

	suite.Run("InvalidID_ShouldBeBadRequest", func() {
		rec, env := suite.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", "")

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal(string(apperrors.CodeBadRequest), env.Error.Code)
	})

	suite.Run("Missing_ShouldBeNotFound", func() {
		id := uuid.New()
		suite.recipes.On("GetRecipe", mock.Anything, id).
			Return(nil, apperrors.NewRecipeNotFoundError(id.String())).Once()

		rec, env := suite.do(http.MethodGet, "/api/v1/recipes/"+id.String(), "")

		suite.Equal(http.StatusNotFound, rec.Code)
		suite.Equal(string(apperrors.CodeRecipeNotFound), env.Error.Code)
		suite.NotEmpty(env.Error.RequestID)
	})

	suite.Run("List_ShouldPassFilters", func() {
		suite.recipes.On("ListRecipes", mock.Anything, inbound.RecipeQuery{Category: "Ужин", Limit: 5}).
			Return([]inbound.RecipeDTO{}, nil).Once()

		rec, _ := suite.do(http.MethodGet, "/api/v1/recipes?category=%D0%A3%D0%B6%D0%B8%D0%BD&limit=5", "")

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("NegativeLimit_ShouldBeBadRequest", func() {
		rec, _ := suite.do(http.MethodGet, "/api/v1/recipes/recommendations?limit=-1", "")

		suite.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (suite *APIServerTestSuite) TestInventory() {
	suite.Run("Upsert_ShouldDecodeCyrillicName", func() {
		suite.inventory.On("Upsert", mock.Anything, inbound.UpsertIngredientCommand{
			Name: "Яйца", Quantity: 12, Price: 10,
		}).Return(&inbound.InventoryItemDTO{Name: "Яйца", Quantity: 12, UnitPrice: 10, Present: true}, nil).Once()

		rec, env := suite.do(http.MethodPut, "/api/v1/inventory/%D0%AF%D0%B9%D1%86%D0%B0", `{"quantity":12,"price":10}`)

		suite.Equal(http.StatusOK, rec.Code)
		suite.True(env.Success)
	})

	suite.Run("Remove_ShouldDecodeNameOnce", func() {
		suite.inventory.On("Remove", mock.Anything, "a%20b").Return(nil).Once()

		rec, _ := suite.do(http.MethodDelete, "/api/v1/inventory/a%2520b", "")

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("Remove_ShouldDecodeEscapedSlash", func() {
		suite.inventory.On("Remove", mock.Anything, "соль/перец").Return(nil).Once()

		rec, _ := suite.do(http.MethodDelete, "/api/v1/inventory/%D1%81%D0%BE%D0%BB%D1%8C%2F%D0%BF%D0%B5%D1%80%D0%B5%D1%86", "")

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("MissingQuantity_ShouldFailValidation", func() {
		rec, env := suite.do(http.MethodPut, "/api/v1/inventory/milk", `{"price":10}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal(string(apperrors.CodeValidationFailed), env.Error.Code)
	})

	suite.Run("Toggle_ShouldUseBodyName", func() {
		suite.inventory.On("Toggle", mock.Anything, "Соль", "г").
			Return(&inbound.InventoryItemDTO{Name: "Соль", Quantity: 1000, Present: true}, nil).Once()

		rec, _ := suite.do(http.MethodPost, "/api/v1/inventory/toggle", `{"name":"Соль","unit":"г"}`)

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("NonJSON_ShouldBeUnsupported", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/batch", strings.NewReader("name=salt"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		suite.handler.ServeHTTP(rec, req)

		suite.Equal(http.StatusUnsupportedMediaType, rec.Code)
	})
}

func (suite *APIServerTestSuite) TestMealPlans() {
	suite.Run("Assign_ShouldPassSlotAndRecipe", func() {
		id := uuid.New()
		suite.plans.On("AssignSlot", mock.Anything, inbound.AssignSlotCommand{
			Date: "2025-03-10", Slot: "breakfast", RecipeID: id,
		}).Return(&inbound.DayDTO{Date: "2025-03-10"}, nil).Once()

		rec, _ := suite.do(http.MethodPut, "/api/v1/menu-plans/2025-03-10/breakfast", `{"recipe_id":"`+id.String()+`"}`)

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("ClearLastSlot_ShouldReportRemovedDay", func() {
		suite.plans.On("ClearSlot", mock.Anything, "2025-03-10", "dinner").
			Return(&inbound.DayDTO{Date: "2025-03-10", Pruned: true}, nil).Once()

		rec, env := suite.do(http.MethodDelete, "/api/v1/menu-plans/2025-03-10/dinner", "")

		suite.Equal(http.StatusOK, rec.Code)
		suite.Equal("Day is empty and was removed", env.Message)
		suite.JSONEq(`{"date":"2025-03-10","pruned":true,"additional":null}`, string(env.Data))
	})

	suite.Run("AddAdditional_ShouldRouteStaticSegment", func() {
		id := uuid.New()
		suite.plans.On("AddAdditional", mock.Anything, "2025-03-11", id).
			Return(&inbound.DayDTO{Date: "2025-03-11"}, nil).Once()

		rec, _ := suite.do(http.MethodPost, "/api/v1/menu-plans/2025-03-11/additional", `{"recipe_id":"`+id.String()+`"}`)

		suite.Equal(http.StatusOK, rec.Code)
	})

	suite.Run("RemoveAdditional_BadIndex_ShouldBeBadRequest", func() {
		rec, _ := suite.do(http.MethodDelete, "/api/v1/menu-plans/2025-03-11/additional/first", "")

		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("Range_ShouldRequireBounds", func() {
		rec, _ := suite.do(http.MethodGet, "/api/v1/menu-plans?start=2025-03-10", "")

		suite.Equal(http.StatusBadRequest, rec.Code)
	})

	suite.Run("InvalidRecipeID_ShouldFailValidation", func() {
		rec, env := suite.do(http.MethodPut, "/api/v1/menu-plans/2025-03-10/lunch", `{"recipe_id":"abc"}`)

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal(string(apperrors.CodeValidationFailed), env.Error.Code)
	})
}

func (suite *APIServerTestSuite) TestShopping() {
	suite.Run("List_ShouldReturnItems", func() {
		suite.shopping.On("List", mock.Anything, "week").Return(&inbound.ShoppingListDTO{
			Window: "week",
			Items: []inbound.ShoppingItemDTO{{
				Item: shopping.Item{Name: "Молоко", NeededQuantity: 100, Unit: "мл", UnitPrice: 50, TotalCost: 5000},
			}},
			Total:            5000,
			UnpurchasedCount: 1,
		}, nil).Once()

		rec, env := suite.do(http.MethodGet, "/api/v1/shopping/week", "")

		suite.Equal(http.StatusOK, rec.Code)
		suite.Contains(string(env.Data), `"unpurchased_count":1`)
	})

	suite.Run("InvalidWindow_ShouldBeBadRequest", func() {
		suite.shopping.On("List", mock.Anything, "year").
			Return(nil, apperrors.NewInvalidWindowError("year")).Once()

		rec, env := suite.do(http.MethodGet, "/api/v1/shopping/year", "")

		suite.Equal(http.StatusBadRequest, rec.Code)
		suite.Equal(string(apperrors.CodeInvalidWindow), env.Error.Code)
	})

	suite.Run("Toggle_WithoutBody_ShouldPass", func() {
		suite.shopping.On("TogglePurchased", mock.Anything, "week", "Молоко").
			Return(&inbound.ToggleResultDTO{Window: "week", Item: "Молоко", Purchased: true}, nil).Once()

		rec, env := suite.do(http.MethodPost, "/api/v1/shopping/week/items/%D0%9C%D0%BE%D0%BB%D0%BE%D0%BA%D0%BE/toggle", "")

		suite.Equal(http.StatusOK, rec.Code)
		suite.True(env.Success)
	})

	suite.Run("PersistenceFailure_ShouldBeBadGateway", func() {
		suite.shopping.On("TogglePurchased", mock.Anything, "month", "Соль").
			Return(nil, apperrors.NewPersistenceFailedError("toggle purchase", errors.New("disk full"))).Once()

		rec, env := suite.do(http.MethodPost, "/api/v1/shopping/month/items/%D0%A1%D0%BE%D0%BB%D1%8C/toggle", "")

		suite.Equal(http.StatusBadGateway, rec.Code)
		suite.Equal(string(apperrors.CodePersistenceFailed), env.Error.Code)
	})
}

func (suite *APIServerTestSuite) TestRateLimit_ShouldRejectOverBurst() {
	suite.cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstSize: 1}
	suite.handler = suite.newServer().Handler()
	suite.inventory.On("List", mock.Anything).Return([]inbound.InventoryItemDTO{}, nil).Once()

	first, _ := suite.do(http.MethodGet, "/api/v1/inventory", "")
	second, env := suite.do(http.MethodGet, "/api/v1/inventory", "")

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.Equal(string(apperrors.CodeTooManyRequests), env.Error.Code)
	suite.Equal("60", second.Header().Get("Retry-After"))
}

func (suite *APIServerTestSuite) TestCORS_ShouldEchoAllowedOrigin() {
	suite.cfg.Server.EnableCORS = true
	suite.cfg.Server.AllowedOrigins = []string{"https://planner.example"}
	suite.handler = suite.newServer().Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/inventory", nil)
	req.Header.Set("Origin", "https://planner.example")
	rec := httptest.NewRecorder()
	suite.handler.ServeHTTP(rec, req)

	suite.Equal(http.StatusNoContent, rec.Code)
	suite.Equal("https://planner.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/inventory", nil)
	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	suite.handler.ServeHTTP(rec, req)

	suite.Empty(rec.Header().Get("Access-Control-Allow-Origin"))
}
