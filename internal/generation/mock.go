package generation

import "github.com/openwellness/wellness-planner/internal/domain"

// Fixed demo-mode plans, used when no provider credential is configured.
// Content is intentionally static so demo mode behaves the same everywhere.

var mockWorkouts = []GeneratedWorkout{
	{
		Title:       "Full Body Strength Training",
		Description: "A comprehensive full-body workout focusing on major muscle groups",
		DayOfWeek:   1,
		Exercises: []GeneratedExercise{
			{Name: "Push-ups", Sets: 3, Reps: 12, Notes: "Keep core tight, lower chest to ground"},
			{Name: "Bodyweight Squats", Sets: 3, Reps: 15, Notes: "Keep weight in heels, knees tracking over toes"},
			{Name: "Dumbbell Rows", Sets: 3, Reps: 12, Notes: "Keep back straight, squeeze shoulder blades"},
		},
	},
	{
		Title:       "Lower Body Focus",
		Description: "Targeting legs and core muscles",
		DayOfWeek:   3,
		Exercises: []GeneratedExercise{
			{Name: "Lunges", Sets: 3, Reps: 12, Notes: "Alternate legs, keep torso upright"},
			{Name: "Glute Bridges", Sets: 3, Reps: 15, Notes: "Squeeze glutes at top of movement"},
			{Name: "Calf Raises", Sets: 3, Reps: 20, Notes: "Full range of motion"},
		},
	},
	{
		Title:       "Upper Body Power",
		Description: "Focus on upper body strength and conditioning",
		DayOfWeek:   5,
		Exercises: []GeneratedExercise{
			{Name: "Dumbbell Press", Sets: 3, Reps: 10, Notes: "Control the weight throughout"},
			{Name: "Bent Over Rows", Sets: 3, Reps: 12, Notes: "Keep back straight, pull to chest"},
			{Name: "Lateral Raises", Sets: 3, Reps: 12, Notes: "Control the movement"},
		},
	},
}

// MockWeeklyWorkouts returns up to days canned workouts. The demo catalogue
// holds three workouts; requests for more days get all three.
func MockWeeklyWorkouts(days int) []GeneratedWorkout {
	if days > len(mockWorkouts) {
		days = len(mockWorkouts)
	}
	if days < 1 {
		days = 1
	}
	out := make([]GeneratedWorkout, days)
	copy(out, mockWorkouts[:days])
	return out
}

// MockNutritionPlan returns the canned demo meal plan.
func MockNutritionPlan() *GeneratedNutritionPlan {
	return &GeneratedNutritionPlan{
		Title:       "Balanced Nutrition Plan",
		Description: "A well-balanced meal plan focused on whole foods",
		Meals: []GeneratedMeal{
			{
				Name:        "Healthy Breakfast Bowl",
				Description: "Nutrient-rich breakfast to start your day",
				MealType:    domain.MealBreakfast,
				Ingredients: []string{"1 cup oatmeal", "1 banana", "2 tbsp honey", "1/4 cup almonds"},
				ServingSize: "1 bowl",
				Macros: domain.MacroNutrients{
					Protein:       15,
					Carbohydrates: 65,
					Fats:          12,
					Calories:      428,
				},
				PreparationTime: 15,
				Instructions: []string{
					"Cook oatmeal according to package instructions",
					"Slice banana",
					"Top with honey and almonds",
				},
			},
			{
				Name:        "Grilled Chicken Salad",
				Description: "Lean protein with fresh vegetables",
				MealType:    domain.MealLunch,
				Ingredients: []string{"150g chicken breast", "2 cups mixed greens", "1 tbsp olive oil", "1/2 avocado"},
				ServingSize: "1 plate",
				Macros: domain.MacroNutrients{
					Protein:       38,
					Carbohydrates: 12,
					Fats:          24,
					Calories:      412,
				},
				PreparationTime: 20,
				Instructions: []string{
					"Grill chicken until cooked through",
					"Toss greens with olive oil",
					"Slice chicken and avocado over salad",
				},
			},
			{
				Name:        "Salmon with Roasted Vegetables",
				Description: "Omega-rich dinner with seasonal vegetables",
				MealType:    domain.MealDinner,
				Ingredients: []string{"150g salmon fillet", "1 cup broccoli", "1 cup sweet potato", "1 tbsp olive oil"},
				ServingSize: "1 plate",
				Macros: domain.MacroNutrients{
					Protein:       34,
					Carbohydrates: 38,
					Fats:          22,
					Calories:      486,
				},
				PreparationTime: 30,
				Instructions: []string{
					"Roast vegetables at 200C for 25 minutes",
					"Pan-sear salmon skin side down",
					"Serve together",
				},
			},
		},
	}
}
