package generation

import (
	"fmt"
	"strings"

	"github.com/openwellness/wellness-planner/internal/domain"
)

// Limits for user-supplied generation configurations.
const (
	MinDaysPerWeek = 1
	MaxDaysPerWeek = 7
	MinDuration    = 15
	MaxDuration    = 120
	MinCalories    = 1200
	MaxCalories    = 5000
	MinMealsPerDay = 3
	MaxMealsPerDay = 6
)

// WorkoutPlanConfig is a user-supplied configuration for weekly workout
// generation.
type WorkoutPlanConfig struct {
	DaysPerWeek int
	Type        domain.WorkoutType
	SplitType   domain.SplitType
	Difficulty  domain.Difficulty
	Duration    int // minutes per workout
	Equipment   []string
}

// Validate checks numeric ranges and enumerated fields.
func (c WorkoutPlanConfig) Validate() error {
	if c.DaysPerWeek < MinDaysPerWeek || c.DaysPerWeek > MaxDaysPerWeek {
		return fmt.Errorf("daysPerWeek must be between %d and %d", MinDaysPerWeek, MaxDaysPerWeek)
	}
	if c.Duration < MinDuration || c.Duration > MaxDuration {
		return fmt.Errorf("duration must be between %d and %d minutes", MinDuration, MaxDuration)
	}
	switch c.Type {
	case domain.WorkoutTypeStrength, domain.WorkoutTypeCardio, domain.WorkoutTypeFlexibility, domain.WorkoutTypeCustom:
	default:
		return fmt.Errorf("unknown workout type %q", c.Type)
	}
	switch c.SplitType {
	case domain.SplitFullBody, domain.SplitUpperLower, domain.SplitCustom:
	default:
		return fmt.Errorf("unknown split type %q", c.SplitType)
	}
	switch c.Difficulty {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	return nil
}

// NutritionPlanConfig is a user-supplied configuration for meal plan
// generation.
type NutritionPlanConfig struct {
	TargetCalories  int
	MealsPerDay     int
	DietType        domain.DietType
	Allergies       []string
	Preferences     []string
	PreparationTime int // minutes per meal at most
}

// Validate checks numeric ranges and enumerated fields.
func (c NutritionPlanConfig) Validate() error {
	if c.TargetCalories < MinCalories || c.TargetCalories > MaxCalories {
		return fmt.Errorf("targetCalories must be between %d and %d", MinCalories, MaxCalories)
	}
	if c.MealsPerDay < MinMealsPerDay || c.MealsPerDay > MaxMealsPerDay {
		return fmt.Errorf("mealsPerDay must be between %d and %d", MinMealsPerDay, MaxMealsPerDay)
	}
	if c.PreparationTime < MinDuration || c.PreparationTime > MaxDuration {
		return fmt.Errorf("preparationTime must be between %d and %d minutes", MinDuration, MaxDuration)
	}
	switch c.DietType {
	case domain.DietBalanced, domain.DietLowCarb, domain.DietHighProtein,
		domain.DietVegetarian, domain.DietVegan, domain.DietKeto:
	default:
		return fmt.Errorf("unknown diet type %q", c.DietType)
	}
	return nil
}

const workoutSystemPrompt = `You are a professional fitness trainer that generates weekly workout plans. Respond with a valid JSON object containing an array of workouts. Each workout must include a title, description, dayOfWeek (1-7), and an array of exercises. Each exercise must have a name, sets, reps, and notes.

Example format:
{
  "workouts": [
    {
      "title": "Workout Title",
      "description": "Workout Description",
      "dayOfWeek": 1,
      "exercises": [
        {
          "name": "Exercise Name",
          "sets": 3,
          "reps": 10,
          "notes": "Exercise notes"
        }
      ]
    }
  ]
}`

// BuildWorkoutPrompt turns a validated configuration into the system
// instruction fixing the output schema and the user instruction embedding the
// concrete parameter values. Pure transformation, no side effects.
func BuildWorkoutPrompt(cfg WorkoutPlanConfig) (systemPrompt, userPrompt string) {
	userPrompt = fmt.Sprintf(`Create a %s level %s workout plan with exactly %d workouts.
Split type: %s
Duration: %d minutes
Equipment: %s

Requirements:
- Generate exactly %d workouts
- For upperLower split: alternate upper and lower body workouts
- Space workouts throughout the week with rest days between
- Include 4-6 exercises per workout
- Each exercise must specify sets, reps, and form notes
- Total workout duration should be around %d minutes`,
		cfg.Difficulty, cfg.Type, cfg.DaysPerWeek,
		cfg.SplitType,
		cfg.Duration,
		strings.Join(cfg.Equipment, ", "),
		cfg.DaysPerWeek,
		cfg.Duration,
	)
	return workoutSystemPrompt, userPrompt
}

const nutritionSystemPrompt = `You are a professional nutritionist that generates daily meal plans. Respond with a valid JSON object describing one nutrition plan. The plan must include a title, description, and an array of meals. Each meal must have a name, description, mealType (breakfast, lunch, dinner or snack), ingredients (array of strings), servingSize, macros (protein, carbohydrates, fats, calories as numbers), preparationTime in minutes, and instructions (array of strings). Macros must be realistic for the described meal.

Example format:
{
  "title": "Plan Title",
  "description": "Plan Description",
  "meals": [
    {
      "name": "Meal Name",
      "description": "Meal Description",
      "mealType": "breakfast",
      "ingredients": ["1 cup oatmeal"],
      "servingSize": "1 bowl",
      "macros": {"protein": 15, "carbohydrates": 65, "fats": 12, "calories": 428},
      "preparationTime": 15,
      "instructions": ["Cook oatmeal"]
    }
  ]
}`

// BuildNutritionPrompt turns a validated configuration into the instruction
// pair for meal plan generation. Pure transformation, no side effects.
func BuildNutritionPrompt(cfg NutritionPlanConfig) (systemPrompt, userPrompt string) {
	userPrompt = fmt.Sprintf(`Create a %s daily meal plan with exactly %d meals totalling around %d calories.
Allergies: %s
Preferences: %s

Requirements:
- Generate exactly %d meals covering the whole day
- Total calories across meals should be close to %d
- Each meal must list ingredients, serving size, macros, and step-by-step instructions
- Preparation time per meal must not exceed %d minutes
- Never include ingredients matching the listed allergies`,
		cfg.DietType, cfg.MealsPerDay, cfg.TargetCalories,
		strings.Join(cfg.Allergies, ", "),
		strings.Join(cfg.Preferences, ", "),
		cfg.MealsPerDay,
		cfg.TargetCalories,
		cfg.PreparationTime,
	)
	return nutritionSystemPrompt, userPrompt
}
