package service

import (
	"context"
	"errors"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound         = errors.New("nutrition plan not found")
	ErrPlanValidationFailed = errors.New("nutrition plan validation failed")
)

// --- Service Interface ---
type NutritionService interface {
	CreateNutritionPlan(ctx context.Context, userID primitive.ObjectID, plan domain.NutritionPlan) (*domain.NutritionPlan, error)
	GetNutritionPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionPlan, error)
	GetNutritionPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.NutritionPlan, error)
	UpdateNutritionPlan(ctx context.Context, userID, planID primitive.ObjectID, patch repository.NutritionPlanPatch) (*domain.NutritionPlan, error)
}

// --- Service Implementation ---

// nutritionService implements the NutritionService interface.
type nutritionService struct {
	planRepo repository.NutritionPlanRepository
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(planRepo repository.NutritionPlanRepository) NutritionService {
	return &nutritionService{
		planRepo: planRepo,
	}
}

func validateMacros(m domain.MacroNutrients) error {
	if m.Protein < 0 || m.Carbohydrates < 0 || m.Fats < 0 || m.Calories < 0 {
		return errors.New("macro quantities must not be negative")
	}
	return nil
}

func validateMeals(meals []domain.Meal) error {
	for _, meal := range meals {
		if meal.Name == "" {
			return errors.New("meal name is required")
		}
		switch meal.MealType {
		case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack:
		default:
			return errors.New("unknown meal type")
		}
		if err := validateMacros(meal.Macros); err != nil {
			return err
		}
		if meal.PreparationTime < 0 {
			return errors.New("preparation time must not be negative")
		}
	}
	return nil
}

// CreateNutritionPlan persists a plan submitted directly by the user. The
// owner identity is attached server-side; the incoming UserID is ignored.
func (s *nutritionService) CreateNutritionPlan(ctx context.Context, userID primitive.ObjectID, plan domain.NutritionPlan) (*domain.NutritionPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a nutrition plan")
	}
	if plan.Title == "" {
		return nil, ErrPlanValidationFailed
	}
	if err := validateMacros(plan.TargetMacros); err != nil {
		return nil, errors.Join(ErrPlanValidationFailed, err)
	}
	if err := validateMeals(plan.Meals); err != nil {
		return nil, errors.Join(ErrPlanValidationFailed, err)
	}

	plan.UserID = userID

	planID, err := s.planRepo.Create(ctx, &plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID, userID)
}

// GetNutritionPlans returns the user's plans, latest first. The dashboard
// treats the first entry as the current plan.
func (s *nutritionService) GetNutritionPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetNutritionPlanByID retrieves a single plan owned by the user.
func (s *nutritionService) GetNutritionPlanByID(ctx context.Context, userID, planID primitive.ObjectID) (*domain.NutritionPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// UpdateNutritionPlan applies a partial field patch; last writer wins.
func (s *nutritionService) UpdateNutritionPlan(ctx context.Context, userID, planID primitive.ObjectID, patch repository.NutritionPlanPatch) (*domain.NutritionPlan, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrPlanValidationFailed
	}
	if patch.TargetMacros != nil {
		if err := validateMacros(*patch.TargetMacros); err != nil {
			return nil, errors.Join(ErrPlanValidationFailed, err)
		}
	}
	if patch.Meals != nil {
		if err := validateMeals(patch.Meals); err != nil {
			return nil, errors.Join(ErrPlanValidationFailed, err)
		}
	}

	err := s.planRepo.Update(ctx, planID, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID, userID)
}
