package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/generation"
	"github.com/openwellness/wellness-planner/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrInvalidGenerationConfig = errors.New("invalid generation configuration")
	// ErrGenerationFailed covers provider transport errors and empty replies.
	ErrGenerationFailed = errors.New("plan generation failed")
)

// PartialSaveError reports a batch persistence failure partway through a
// multi-workout save. Workouts before the failure are already committed and
// stay committed; there is no rollback.
type PartialSaveError struct {
	Saved int // number of workouts committed before the failure
	Total int
	Err   error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("saved %d of %d workouts before a persistence failure: %v", e.Saved, e.Total, e.Err)
}

func (e *PartialSaveError) Unwrap() error {
	return e.Err
}

// WorkoutPlanResult is the outcome of one workout generation request.
// DemoMode is true when the canned fallback plan was used because no
// provider credential is configured.
type WorkoutPlanResult struct {
	Workouts []domain.Workout
	DemoMode bool
}

// NutritionPlanResult is the outcome of one meal plan generation request.
type NutritionPlanResult struct {
	Plan     *domain.NutritionPlan
	DemoMode bool
}

// --- Service Interface ---

// PlannerService runs the plan-generation pipeline: prompt construction,
// provider call (or demo fallback), shape validation, persistence.
type PlannerService interface {
	GenerateWorkoutPlan(ctx context.Context, userID primitive.ObjectID, cfg generation.WorkoutPlanConfig) (*WorkoutPlanResult, error)
	GenerateNutritionPlan(ctx context.Context, userID primitive.ObjectID, cfg generation.NutritionPlanConfig) (*NutritionPlanResult, error)
}

// --- Service Implementation ---

type plannerService struct {
	workoutRepo   repository.WorkoutRepository
	nutritionRepo repository.NutritionPlanRepository
	client        generation.CompletionClient // nil means demo mode
	logger        *zap.SugaredLogger
	now           func() time.Time
}

// NewPlannerService creates a new instance of plannerService. Pass a nil
// client to run in demo mode; the pipeline then substitutes the canned plans
// without contacting the provider.
func NewPlannerService(
	workoutRepo repository.WorkoutRepository,
	nutritionRepo repository.NutritionPlanRepository,
	client generation.CompletionClient,
	logger *zap.SugaredLogger,
) PlannerService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &plannerService{
		workoutRepo:   workoutRepo,
		nutritionRepo: nutritionRepo,
		client:        client,
		logger:        logger,
		now:           time.Now,
	}
}

// GenerateWorkoutPlan runs the full pipeline for a weekly workout plan.
// Workouts are persisted sequentially, one insert per workout; on a
// persistence failure the loop aborts, earlier workouts stay committed, and
// the returned result lists what was saved alongside a *PartialSaveError.
func (s *plannerService) GenerateWorkoutPlan(ctx context.Context, userID primitive.ObjectID, cfg generation.WorkoutPlanConfig) (*WorkoutPlanResult, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to generate workouts")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenerationConfig, err)
	}

	batchID := uuid.NewString()
	generated, demoMode, err := s.generateWorkouts(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("generated workout plan",
		"batchId", batchID, "workouts", len(generated), "demoMode", demoMode)

	result := &WorkoutPlanResult{DemoMode: demoMode}
	for i, g := range generated {
		workout := domain.Workout{
			UserID:      userID,
			Title:       g.Title,
			Description: g.Description,
			Type:        cfg.Type,
			Difficulty:  cfg.Difficulty,
			SplitType:   cfg.SplitType,
			IsRestDay:   g.IsRestDay,
			Exercises:   mapGeneratedExercises(g.Exercises),
		}
		scheduled := nextOccurrence(s.now().UTC(), g.DayOfWeek)
		workout.ScheduledDate = &scheduled

		id, err := s.workoutRepo.Create(ctx, &workout)
		if err != nil {
			s.logger.Errorw("workout batch save failed",
				"batchId", batchID, "saved", i, "total", len(generated), "error", err)
			return result, &PartialSaveError{Saved: i, Total: len(generated), Err: err}
		}
		workout.ID = id
		result.Workouts = append(result.Workouts, workout)
	}
	return result, nil
}

// GenerateNutritionPlan runs the full pipeline for a daily meal plan.
func (s *plannerService) GenerateNutritionPlan(ctx context.Context, userID primitive.ObjectID, cfg generation.NutritionPlanConfig) (*NutritionPlanResult, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to generate a nutrition plan")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenerationConfig, err)
	}

	generated, demoMode, err := s.generateNutrition(ctx, cfg)
	if err != nil {
		return nil, err
	}

	plan := domain.NutritionPlan{
		UserID:              userID,
		Title:               generated.Title,
		Description:         generated.Description,
		TargetCalories:      cfg.TargetCalories,
		TargetMacros:        targetMacrosFor(generated, cfg.TargetCalories),
		Meals:               mapGeneratedMeals(generated.Meals),
		DietaryRestrictions: cfg.Allergies,
		Preferences:         cfg.Preferences,
	}

	id, err := s.nutritionRepo.Create(ctx, &plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	s.logger.Infow("generated nutrition plan", "planId", id.Hex(), "meals", len(plan.Meals), "demoMode", demoMode)
	return &NutritionPlanResult{Plan: &plan, DemoMode: demoMode}, nil
}

// generateWorkouts calls the provider and validates its reply, or falls back
// to the canned plan when no client is configured.
func (s *plannerService) generateWorkouts(ctx context.Context, cfg generation.WorkoutPlanConfig) ([]generation.GeneratedWorkout, bool, error) {
	if s.client == nil {
		return generation.MockWeeklyWorkouts(cfg.DaysPerWeek), true, nil
	}

	systemPrompt, userPrompt := generation.BuildWorkoutPrompt(cfg)
	raw, err := s.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, generation.ErrNotConfigured) {
			return generation.MockWeeklyWorkouts(cfg.DaysPerWeek), true, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	workouts, err := generation.ParseWorkoutPlan(raw, cfg.DaysPerWeek)
	if err != nil {
		return nil, false, err // *generation.ShapeError surfaces as-is
	}
	return workouts, false, nil
}

func (s *plannerService) generateNutrition(ctx context.Context, cfg generation.NutritionPlanConfig) (*generation.GeneratedNutritionPlan, bool, error) {
	if s.client == nil {
		return generation.MockNutritionPlan(), true, nil
	}

	systemPrompt, userPrompt := generation.BuildNutritionPrompt(cfg)
	raw, err := s.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		if errors.Is(err, generation.ErrNotConfigured) {
			return generation.MockNutritionPlan(), true, nil
		}
		return nil, false, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	plan, err := generation.ParseNutritionPlan(raw)
	if err != nil {
		return nil, false, err
	}
	return plan, false, nil
}

func mapGeneratedExercises(in []generation.GeneratedExercise) []domain.Exercise {
	out := make([]domain.Exercise, len(in))
	for i, g := range in {
		out[i] = domain.Exercise{
			Name:  g.Name,
			Sets:  g.Sets,
			Reps:  g.Reps,
			Notes: g.Notes,
		}
	}
	return out
}

func mapGeneratedMeals(in []generation.GeneratedMeal) []domain.Meal {
	out := make([]domain.Meal, len(in))
	for i, g := range in {
		out[i] = domain.Meal{
			Name:            g.Name,
			Description:     g.Description,
			MealType:        g.MealType,
			Ingredients:     g.Ingredients,
			ServingSize:     g.ServingSize,
			Macros:          g.Macros,
			PreparationTime: g.PreparationTime,
			Instructions:    g.Instructions,
		}
	}
	return out
}

// targetMacrosFor uses the provider's target macros when present, otherwise a
// 30/40/30 protein/carb/fat split of the calorie target (protein and carbs at
// 4 kcal per gram, fat at 9).
func targetMacrosFor(plan *generation.GeneratedNutritionPlan, targetCalories int) domain.MacroNutrients {
	if plan.TargetMacros != nil {
		return *plan.TargetMacros
	}
	calories := float64(targetCalories)
	return domain.MacroNutrients{
		Protein:       math.Round(calories * 0.3 / 4),
		Carbohydrates: math.Round(calories * 0.4 / 4),
		Fats:          math.Round(calories * 0.3 / 9),
		Calories:      calories,
	}
}

// nextOccurrence resolves a 1-7 (Mon-Sun) weekday to its next calendar date
// from now. Today counts as the next occurrence of its own weekday.
func nextOccurrence(now time.Time, dayOfWeek int) time.Time {
	currentDay := int(now.Weekday())
	if currentDay == 0 {
		currentDay = 7 // Sunday
	}
	daysToAdd := (dayOfWeek - currentDay + 7) % 7
	return now.AddDate(0, 0, daysToAdd)
}
