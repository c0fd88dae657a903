package generation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/openwellness/wellness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExercise() map[string]any {
	return map[string]any{
		"name":  "Push-ups",
		"sets":  3,
		"reps":  12,
		"notes": "Keep core tight",
	}
}

func validWorkout(day int) map[string]any {
	exercises := make([]any, 4)
	for i := range exercises {
		exercises[i] = validExercise()
	}
	return map[string]any{
		"title":       fmt.Sprintf("Day %d Strength", day),
		"description": "Compound lifts",
		"dayOfWeek":   day,
		"exercises":   exercises,
	}
}

func marshalPlan(t *testing.T, workouts ...map[string]any) string {
	t.Helper()
	items := make([]any, len(workouts))
	for i, w := range workouts {
		items[i] = w
	}
	raw, err := json.Marshal(map[string]any{"workouts": items})
	require.NoError(t, err)
	return string(raw)
}

func TestParseWorkoutPlan_Valid(t *testing.T) {
	raw := marshalPlan(t, validWorkout(1), validWorkout(3))

	workouts, err := ParseWorkoutPlan(raw, 2)
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, "Day 1 Strength", workouts[0].Title)
	assert.Equal(t, 1, workouts[0].DayOfWeek)
	assert.Len(t, workouts[0].Exercises, 4)
	assert.Equal(t, 3, workouts[0].Exercises[0].Sets)
	assert.False(t, workouts[0].IsRestDay)
}

func TestParseWorkoutPlan_CodeFenced(t *testing.T) {
	raw := "```json\n" + marshalPlan(t, validWorkout(1)) + "\n```"

	workouts, err := ParseWorkoutPlan(raw, 1)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)
}

func TestParseWorkoutPlan_RestDayExemption(t *testing.T) {
	rest := map[string]any{
		"title":       "Rest Day",
		"description": "Active recovery",
		"dayOfWeek":   2,
	}
	raw := marshalPlan(t, validWorkout(1), rest)

	workouts, err := ParseWorkoutPlan(raw, 2)
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.True(t, workouts[1].IsRestDay)
	assert.Empty(t, workouts[1].Exercises)
}

func TestParseWorkoutPlan_ShapeViolations(t *testing.T) {
	tests := []struct {
		name     string
		raw      func(t *testing.T) string
		wantDays int
		path     string
	}{
		{
			name:     "not json",
			raw:      func(t *testing.T) string { return "here is your plan!" },
			wantDays: 1,
			path:     "$",
		},
		{
			name: "missing workouts field",
			raw: func(t *testing.T) string {
				return `{"plan": []}`
			},
			wantDays: 1,
			path:     "workouts",
		},
		{
			name: "day count mismatch",
			raw: func(t *testing.T) string {
				return marshalPlan(t, validWorkout(1))
			},
			wantDays: 3,
			path:     "workouts",
		},
		{
			name: "missing title",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				delete(w, "title")
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].title",
		},
		{
			name: "day of week out of range",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				w["dayOfWeek"] = 8
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].dayOfWeek",
		},
		{
			name: "too few exercises",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				w["exercises"] = []any{validExercise(), validExercise(), validExercise()}
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].exercises",
		},
		{
			name: "too many exercises",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				var exercises []any
				for i := 0; i < 7; i++ {
					exercises = append(exercises, validExercise())
				}
				w["exercises"] = exercises
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].exercises",
		},
		{
			name: "sets as string",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				ex := validExercise()
				ex["sets"] = "3"
				w["exercises"] = []any{ex, validExercise(), validExercise(), validExercise()}
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].exercises[0].sets",
		},
		{
			name: "zero reps",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				ex := validExercise()
				ex["reps"] = 0
				w["exercises"] = []any{ex, validExercise(), validExercise(), validExercise()}
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].exercises[0].reps",
		},
		{
			name: "fractional sets",
			raw: func(t *testing.T) string {
				w := validWorkout(1)
				ex := validExercise()
				ex["sets"] = 2.5
				w["exercises"] = []any{ex, validExercise(), validExercise(), validExercise()}
				return marshalPlan(t, w)
			},
			wantDays: 1,
			path:     "workouts[0].exercises[0].sets",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWorkoutPlan(tc.raw(t), tc.wantDays)
			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tc.path, shapeErr.Path)
		})
	}
}

func validMeal() map[string]any {
	return map[string]any{
		"name":        "Oatmeal Bowl",
		"description": "Warm breakfast",
		"mealType":    "breakfast",
		"ingredients": []any{"1 cup oatmeal", "1 banana"},
		"servingSize": "1 bowl",
		"macros": map[string]any{
			"protein":       15,
			"carbohydrates": 65,
			"fats":          12,
			"calories":      428,
		},
		"preparationTime": 15,
		"instructions":    []any{"Cook oatmeal", "Slice banana"},
	}
}

func marshalNutrition(t *testing.T, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

func TestParseNutritionPlan_Valid(t *testing.T) {
	doc := map[string]any{
		"title":       "High Protein Plan",
		"description": "Protein-forward meals",
		"targetMacros": map[string]any{
			"protein":       150,
			"carbohydrates": 200,
			"fats":          67,
			"calories":      2000,
		},
		"meals": []any{validMeal()},
	}

	plan, err := ParseNutritionPlan(marshalNutrition(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "High Protein Plan", plan.Title)
	require.NotNil(t, plan.TargetMacros)
	assert.Equal(t, 150.0, plan.TargetMacros.Protein)
	require.Len(t, plan.Meals, 1)
	assert.Equal(t, domain.MealBreakfast, plan.Meals[0].MealType)
	assert.Equal(t, 428.0, plan.Meals[0].Macros.Calories)
}

func TestParseNutritionPlan_OmittedTargetMacros(t *testing.T) {
	doc := map[string]any{
		"title":       "Plan",
		"description": "Desc",
		"meals":       []any{validMeal()},
	}

	plan, err := ParseNutritionPlan(marshalNutrition(t, doc))
	require.NoError(t, err)
	assert.Nil(t, plan.TargetMacros)
}

func TestParseNutritionPlan_ShapeViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		path   string
	}{
		{
			name:   "missing meals",
			mutate: func(doc map[string]any) { delete(doc, "meals") },
			path:   "meals",
		},
		{
			name:   "empty meals",
			mutate: func(doc map[string]any) { doc["meals"] = []any{} },
			path:   "meals",
		},
		{
			name: "unknown meal type",
			mutate: func(doc map[string]any) {
				meal := validMeal()
				meal["mealType"] = "brunch"
				doc["meals"] = []any{meal}
			},
			path: "meals[0].mealType",
		},
		{
			name: "missing macro key",
			mutate: func(doc map[string]any) {
				meal := validMeal()
				meal["macros"] = map[string]any{"protein": 15, "carbohydrates": 65, "fats": 12}
				doc["meals"] = []any{meal}
			},
			path: "meals[0].macros.calories",
		},
		{
			name: "negative macro",
			mutate: func(doc map[string]any) {
				meal := validMeal()
				meal["macros"] = map[string]any{"protein": -1, "carbohydrates": 65, "fats": 12, "calories": 428}
				doc["meals"] = []any{meal}
			},
			path: "meals[0].macros.protein",
		},
		{
			name: "non-string ingredient",
			mutate: func(doc map[string]any) {
				meal := validMeal()
				meal["ingredients"] = []any{"oats", 2}
				doc["meals"] = []any{meal}
			},
			path: "meals[0].ingredients[1]",
		},
		{
			name: "negative preparation time",
			mutate: func(doc map[string]any) {
				meal := validMeal()
				meal["preparationTime"] = -5
				doc["meals"] = []any{meal}
			},
			path: "meals[0].preparationTime",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := map[string]any{
				"title":       "Plan",
				"description": "Desc",
				"meals":       []any{validMeal()},
			}
			tc.mutate(doc)

			_, err := ParseNutritionPlan(marshalNutrition(t, doc))
			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tc.path, shapeErr.Path)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}
