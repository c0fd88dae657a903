package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func workoutGenConfig(days int) generation.WorkoutPlanConfig {
	return generation.WorkoutPlanConfig{
		DaysPerWeek: days,
		Type:        domain.WorkoutTypeStrength,
		SplitType:   domain.SplitFullBody,
		Difficulty:  domain.DifficultyBeginner,
		Duration:    45,
	}
}

func nutritionGenConfig() generation.NutritionPlanConfig {
	return generation.NutritionPlanConfig{
		TargetCalories:  2000,
		MealsPerDay:     3,
		DietType:        domain.DietBalanced,
		PreparationTime: 30,
	}
}

// providerWorkoutPlan builds a syntactically valid provider response with the
// requested number of workouts.
func providerWorkoutPlan(t *testing.T, days int) string {
	t.Helper()
	workouts := make([]map[string]any, days)
	for i := range workouts {
		exercises := make([]map[string]any, 4)
		for j := range exercises {
			exercises[j] = map[string]any{
				"name": "Squats", "sets": 3, "reps": 10, "notes": "Slow descent",
			}
		}
		workouts[i] = map[string]any{
			"title":       "Strength Session",
			"description": "Compound focus",
			"dayOfWeek":   i + 1,
			"exercises":   exercises,
		}
	}
	raw, err := json.Marshal(map[string]any{"workouts": workouts})
	require.NoError(t, err)
	return string(raw)
}

func TestGenerateWorkoutPlan_DemoModeWithoutClient(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), nil, nil)
	userID := primitive.NewObjectID()

	result, err := svc.GenerateWorkoutPlan(context.Background(), userID, workoutGenConfig(3))
	require.NoError(t, err)

	assert.True(t, result.DemoMode)
	require.Len(t, result.Workouts, 3)
	assert.Equal(t, "Full Body Strength Training", result.Workouts[0].Title)
	assert.Len(t, result.Workouts[0].Exercises, 3)

	// The demo plan must actually be persisted, owned by the caller.
	assert.Len(t, repo.workouts, 3)
	for _, w := range repo.workouts {
		assert.Equal(t, userID, w.UserID)
		assert.False(t, w.Completed)
		assert.NotNil(t, w.ScheduledDate)
	}
}

func TestGenerateWorkoutPlan_DemoModeOnUnconfiguredClient(t *testing.T) {
	client := &fakeCompletionClient{err: generation.ErrNotConfigured}
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), client, nil)

	result, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), workoutGenConfig(2))
	require.NoError(t, err)
	assert.True(t, result.DemoMode)
	assert.Len(t, result.Workouts, 2)
}

func TestGenerateWorkoutPlan_ProviderSuccess(t *testing.T) {
	client := &fakeCompletionClient{response: providerWorkoutPlan(t, 4)}
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), client, nil)
	cfg := workoutGenConfig(4)

	result, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), cfg)
	require.NoError(t, err)

	assert.False(t, result.DemoMode)
	require.Len(t, result.Workouts, 4)
	assert.Equal(t, 1, client.calls)
	for _, w := range result.Workouts {
		assert.Equal(t, cfg.Type, w.Type)
		assert.Equal(t, cfg.Difficulty, w.Difficulty)
		assert.Len(t, w.Exercises, 4)
	}
}

func TestGenerateWorkoutPlan_InvalidConfig(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), nil, nil)

	_, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), workoutGenConfig(0))
	assert.ErrorIs(t, err, ErrInvalidGenerationConfig)
	assert.Empty(t, repo.workouts)
}

func TestGenerateWorkoutPlan_ShapeErrorSkipsPersistence(t *testing.T) {
	client := &fakeCompletionClient{response: `{"workouts": "not an array"}`}
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), client, nil)

	_, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), workoutGenConfig(2))

	var shapeErr *generation.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Empty(t, repo.workouts, "a rejected plan must not be persisted")
}

func TestGenerateWorkoutPlan_ProviderFailure(t *testing.T) {
	client := &fakeCompletionClient{err: errors.New("connection refused")}
	repo := newFakeWorkoutRepo()
	svc := NewPlannerService(repo, newFakeNutritionRepo(), client, nil)

	_, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), workoutGenConfig(2))
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, repo.workouts)
}

func TestGenerateWorkoutPlan_PartialSave(t *testing.T) {
	client := &fakeCompletionClient{response: providerWorkoutPlan(t, 3)}
	repo := newFakeWorkoutRepo()
	repo.failAfter = 1 // second insert fails
	svc := NewPlannerService(repo, newFakeNutritionRepo(), client, nil)

	result, err := svc.GenerateWorkoutPlan(context.Background(), primitive.NewObjectID(), workoutGenConfig(3))

	var partialErr *PartialSaveError
	require.ErrorAs(t, err, &partialErr)
	assert.Equal(t, 1, partialErr.Saved)
	assert.Equal(t, 3, partialErr.Total)

	// The first workout stays committed; the result reports what was saved.
	require.NotNil(t, result)
	assert.Len(t, result.Workouts, 1)
	assert.Len(t, repo.workouts, 1)
}

func TestGenerateNutritionPlan_DemoMode(t *testing.T) {
	repo := newFakeNutritionRepo()
	svc := NewPlannerService(newFakeWorkoutRepo(), repo, nil, nil)
	userID := primitive.NewObjectID()
	cfg := nutritionGenConfig()

	result, err := svc.GenerateNutritionPlan(context.Background(), userID, cfg)
	require.NoError(t, err)

	assert.True(t, result.DemoMode)
	assert.Equal(t, "Balanced Nutrition Plan", result.Plan.Title)
	assert.Equal(t, userID, result.Plan.UserID)
	assert.Equal(t, cfg.TargetCalories, result.Plan.TargetCalories)
	assert.Len(t, repo.plans, 1)
}

func TestGenerateNutritionPlan_DefaultMacroSplit(t *testing.T) {
	svc := NewPlannerService(newFakeWorkoutRepo(), newFakeNutritionRepo(), nil, nil)

	result, err := svc.GenerateNutritionPlan(context.Background(), primitive.NewObjectID(), nutritionGenConfig())
	require.NoError(t, err)

	// The canned plan carries no target macros, so the 30/40/30 calorie
	// split applies: 2000 kcal -> 150g protein, 200g carbs, 67g fat.
	macros := result.Plan.TargetMacros
	assert.Equal(t, 150.0, macros.Protein)
	assert.Equal(t, 200.0, macros.Carbohydrates)
	assert.Equal(t, 67.0, macros.Fats)
	assert.Equal(t, 2000.0, macros.Calories)
}

func TestGenerateNutritionPlan_PersistenceFailure(t *testing.T) {
	repo := newFakeNutritionRepo()
	repo.createErr = errors.New("write concern error")
	svc := NewPlannerService(newFakeWorkoutRepo(), repo, nil, nil)

	_, err := svc.GenerateNutritionPlan(context.Background(), primitive.NewObjectID(), nutritionGenConfig())
	require.Error(t, err)
	assert.Empty(t, repo.plans)
}

func TestNextOccurrence(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dayOfWeek int
		wantDay   int
	}{
		{"same day", 1, 31},
		{"later this week", 3, 2},
		{"sunday wraps to day 7", 7, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nextOccurrence(monday, tc.dayOfWeek)
			assert.Equal(t, tc.wantDay, got.Day())
			assert.False(t, got.Before(monday))
		})
	}
}
