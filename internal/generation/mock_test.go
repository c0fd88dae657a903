package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockWeeklyWorkouts(t *testing.T) {
	workouts := MockWeeklyWorkouts(2)
	require.Len(t, workouts, 2)
	assert.Equal(t, "Full Body Strength Training", workouts[0].Title)
	assert.Len(t, workouts[0].Exercises, 3)

	// The demo catalogue is capped; larger requests get everything it has.
	assert.Len(t, MockWeeklyWorkouts(7), 3)
	assert.Len(t, MockWeeklyWorkouts(0), 1)
}

func TestMockNutritionPlan(t *testing.T) {
	plan := MockNutritionPlan()
	assert.Equal(t, "Balanced Nutrition Plan", plan.Title)
	require.Len(t, plan.Meals, 3)
	for _, meal := range plan.Meals {
		assert.NotEmpty(t, meal.Ingredients)
		assert.Positive(t, meal.Macros.Calories)
	}
}
