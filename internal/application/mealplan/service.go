// Package mealplan provides the application layer for scheduling recipes
package mealplan

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/alchemorsel/planner/internal/domain/mealplan"
	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/alchemorsel/planner/internal/ports/inbound"
	"github.com/alchemorsel/planner/internal/ports/outbound"
	"github.com/alchemorsel/planner/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeResolver looks up the recipe placed into a slot
type RecipeResolver interface {
	Summary(ctx context.Context, id uuid.UUID) (recipe.Recipe, error)
}

// MealPlanService implements the meal plan use cases
type MealPlanService struct {
	mu      sync.Mutex
	repo    outbound.MealPlanRepository
	recipes RecipeResolver
	logger  *zap.Logger
}

var _ inbound.MealPlanService = (*MealPlanService)(nil)

// NewMealPlanService creates a new meal plan service
func NewMealPlanService(repo outbound.MealPlanRepository, recipes RecipeResolver, logger *zap.Logger) *MealPlanService {
	return &MealPlanService{
		repo:    repo,
		recipes: recipes,
		logger:  logger.Named("mealplan-service"),
	}
}

// GetRange returns the planned days between from and to inclusive
func (s *MealPlanService) GetRange(ctx context.Context, from, to string) ([]inbound.DayDTO, error) {
	if _, err := mealplan.ParseDateKey(from); err != nil {
		return nil, errors.NewInvalidDateError(from)
	}
	if _, err := mealplan.ParseDateKey(to); err != nil {
		return nil, errors.NewInvalidDateError(to)
	}
	if from > to {
		return nil, errors.NewValidationError("start must not be after end")
	}

	plan, err := s.repo.FindRange(ctx, from, to)
	if err != nil {
		return nil, errors.NewDatabaseError("load meal plan", err)
	}

	out := make([]inbound.DayDTO, 0, len(plan))
	for _, date := range plan.Dates() {
		out = append(out, DayToDTO(plan[date]))
	}
	return out, nil
}

// AssignSlot places a recipe in a named slot
func (s *MealPlanService) AssignSlot(ctx context.Context, cmd inbound.AssignSlotCommand) (*inbound.DayDTO, error) {
	slot, err := mealplan.ParseSlot(cmd.Slot)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithMetadata("slot", cmd.Slot)
	}

	r, err := s.recipes.Summary(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, cmd.Date, func(plan mealplan.Plan) error {
		return plan.Assign(cmd.Date, slot, r)
	})
}

// ClearSlot empties a named slot. The day disappears when nothing is left.
func (s *MealPlanService) ClearSlot(ctx context.Context, date, slotName string) (*inbound.DayDTO, error) {
	slot, err := mealplan.ParseSlot(slotName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithMetadata("slot", slotName)
	}

	return s.mutate(ctx, date, func(plan mealplan.Plan) error {
		return plan.Clear(date, slot)
	})
}

// AddAdditional appends a recipe to the additional items of a day
func (s *MealPlanService) AddAdditional(ctx context.Context, date string, recipeID uuid.UUID) (*inbound.DayDTO, error) {
	r, err := s.recipes.Summary(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, date, func(plan mealplan.Plan) error {
		return plan.AddAdditional(date, r)
	})
}

// RemoveAdditional drops one additional item. The day disappears when nothing is left.
func (s *MealPlanService) RemoveAdditional(ctx context.Context, date string, index int) (*inbound.DayDTO, error) {
	return s.mutate(ctx, date, func(plan mealplan.Plan) error {
		return plan.RemoveAdditional(date, index)
	})
}

// DeleteDay removes every recipe planned for date
func (s *MealPlanService) DeleteDay(ctx context.Context, date string) error {
	if _, err := mealplan.ParseDateKey(date); err != nil {
		return errors.NewInvalidDateError(date)
	}
	if err := s.repo.DeleteDay(ctx, date); err != nil {
		return errors.NewDatabaseError("delete meal plan day", err)
	}
	s.logger.Info("Meal plan day deleted", zap.String("date", date))
	return nil
}

// mutate loads the day, applies fn and stores the result. A pruned day is
// deleted and reported with Pruned set.
func (s *MealPlanService) mutate(ctx context.Context, date string, fn func(mealplan.Plan) error) (*inbound.DayDTO, error) {
	if _, err := mealplan.ParseDateKey(date); err != nil {
		return nil, errors.NewInvalidDateError(date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.repo.FindRange(ctx, date, date)
	if err != nil {
		return nil, errors.NewDatabaseError("load meal plan", err)
	}
	if plan == nil {
		plan = mealplan.New()
	}

	if err := fn(plan); err != nil {
		switch {
		case stderrors.Is(err, mealplan.ErrAdditionalOutOfRange):
			return nil, errors.NewNotFoundError("Additional item").WithMetadata("date", date)
		case stderrors.Is(err, mealplan.ErrInvalidDate):
			return nil, errors.NewInvalidDateError(date)
		default:
			return nil, errors.NewValidationError(err.Error())
		}
	}

	day, kept := plan[date]
	if !kept {
		if err := s.repo.DeleteDay(ctx, date); err != nil {
			return nil, errors.NewDatabaseError("delete meal plan day", err)
		}
		s.logger.Info("Meal plan day pruned", zap.String("date", date))
		return &inbound.DayDTO{Date: date, Pruned: true, Additional: []inbound.RecipeRefDTO{}}, nil
	}

	if err := s.repo.SaveDay(ctx, day); err != nil {
		return nil, errors.NewDatabaseError("save meal plan day", err)
	}

	dto := DayToDTO(day)
	return &dto, nil
}

// DayToDTO converts a day to its response form
func DayToDTO(d *mealplan.Day) inbound.DayDTO {
	dto := inbound.DayDTO{
		Date:       d.Date,
		Breakfast:  refDTO(d.Breakfast),
		Lunch:      refDTO(d.Lunch),
		Dinner:     refDTO(d.Dinner),
		Extra:      refDTO(d.Extra),
		Additional: make([]inbound.RecipeRefDTO, 0, len(d.Additional)),
	}
	for i := range d.Additional {
		dto.Additional = append(dto.Additional, *refDTO(&d.Additional[i]))
	}
	return dto
}

func refDTO(r *recipe.Recipe) *inbound.RecipeRefDTO {
	if r == nil {
		return nil
	}
	return &inbound.RecipeRefDTO{ID: r.ID, Title: r.Title, Category: r.Category}
}
