package generation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/openwellness/wellness-planner/internal/domain"
)

// ShapeError reports the first structural violation found in a provider
// response. The plan is rejected as a whole; there is no partial acceptance
// or auto-repair.
type ShapeError struct {
	Path   string // location of the violation, e.g. "workouts[2].exercises[0].sets"
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid plan shape at %s: %s", e.Path, e.Reason)
}

// GeneratedExercise is one exercise as produced by the provider, after
// validation.
type GeneratedExercise struct {
	Name  string
	Sets  int
	Reps  int
	Notes string
}

// GeneratedWorkout is one workout as produced by the provider, after
// validation. Rest days carry an empty exercise list.
type GeneratedWorkout struct {
	Title       string
	Description string
	DayOfWeek   int
	IsRestDay   bool
	Exercises   []GeneratedExercise
}

// GeneratedMeal is one meal as produced by the provider, after validation.
type GeneratedMeal struct {
	Name            string
	Description     string
	MealType        domain.MealType
	Ingredients     []string
	ServingSize     string
	Macros          domain.MacroNutrients
	PreparationTime int
	Instructions    []string
}

// GeneratedNutritionPlan is a meal plan as produced by the provider, after
// validation. TargetMacros is nil when the provider omitted it.
type GeneratedNutritionPlan struct {
	Title        string
	Description  string
	TargetMacros *domain.MacroNutrients
	Meals        []GeneratedMeal
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models emit despite the JSON-only instruction.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseWorkoutPlan parses a raw provider response and validates it
// depth-first against the weekly workout schema. wantDays is the requested
// workout count; the response must contain exactly that many workouts.
func ParseWorkoutPlan(raw string, wantDays int) ([]GeneratedWorkout, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &doc); err != nil {
		return nil, &ShapeError{Path: "$", Reason: "response is not valid JSON"}
	}

	items, ok := doc["workouts"].([]any)
	if !ok {
		return nil, &ShapeError{Path: "workouts", Reason: "missing or not an array"}
	}
	if len(items) != wantDays {
		return nil, &ShapeError{
			Path:   "workouts",
			Reason: fmt.Sprintf("expected %d workouts but received %d", wantDays, len(items)),
		}
	}

	workouts := make([]GeneratedWorkout, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("workouts[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: path, Reason: "not an object"}
		}

		title, serr := requireString(obj, path, "title")
		if serr != nil {
			return nil, serr
		}
		description, serr := requireString(obj, path, "description")
		if serr != nil {
			return nil, serr
		}
		day, serr := requireInt(obj, path, "dayOfWeek")
		if serr != nil {
			return nil, serr
		}
		if day < 1 || day > 7 {
			return nil, &ShapeError{Path: path + ".dayOfWeek", Reason: "must be between 1 and 7"}
		}

		w := GeneratedWorkout{
			Title:       title,
			Description: description,
			DayOfWeek:   day,
			Exercises:   []GeneratedExercise{},
		}

		// Rest days are exempt from the exercise-count rule and always
		// carry an empty exercise list.
		if strings.Contains(strings.ToLower(title), "rest day") {
			w.IsRestDay = true
			workouts = append(workouts, w)
			continue
		}

		rawExercises, ok := obj["exercises"].([]any)
		if !ok {
			return nil, &ShapeError{Path: path + ".exercises", Reason: "missing or not an array"}
		}
		if len(rawExercises) < 4 || len(rawExercises) > 6 {
			return nil, &ShapeError{
				Path:   path + ".exercises",
				Reason: fmt.Sprintf("must have between 4-6 exercises, got %d", len(rawExercises)),
			}
		}

		for j, rawExercise := range rawExercises {
			exPath := fmt.Sprintf("%s.exercises[%d]", path, j)
			exObj, ok := rawExercise.(map[string]any)
			if !ok {
				return nil, &ShapeError{Path: exPath, Reason: "not an object"}
			}
			name, serr := requireString(exObj, exPath, "name")
			if serr != nil {
				return nil, serr
			}
			notes, serr := requireString(exObj, exPath, "notes")
			if serr != nil {
				return nil, serr
			}
			sets, serr := requirePositiveInt(exObj, exPath, "sets")
			if serr != nil {
				return nil, serr
			}
			reps, serr := requirePositiveInt(exObj, exPath, "reps")
			if serr != nil {
				return nil, serr
			}
			w.Exercises = append(w.Exercises, GeneratedExercise{
				Name:  name,
				Sets:  sets,
				Reps:  reps,
				Notes: notes,
			})
		}

		workouts = append(workouts, w)
	}
	return workouts, nil
}

// ParseNutritionPlan parses a raw provider response and validates it
// depth-first against the meal plan schema.
func ParseNutritionPlan(raw string) (*GeneratedNutritionPlan, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &doc); err != nil {
		return nil, &ShapeError{Path: "$", Reason: "response is not valid JSON"}
	}

	title, serr := requireString(doc, "$", "title")
	if serr != nil {
		return nil, serr
	}
	description, serr := requireString(doc, "$", "description")
	if serr != nil {
		return nil, serr
	}

	rawMeals, ok := doc["meals"].([]any)
	if !ok {
		return nil, &ShapeError{Path: "meals", Reason: "missing or not an array"}
	}
	if len(rawMeals) == 0 {
		return nil, &ShapeError{Path: "meals", Reason: "must not be empty"}
	}

	plan := &GeneratedNutritionPlan{
		Title:       title,
		Description: description,
	}

	if rawTarget, present := doc["targetMacros"]; present {
		macros, serr := parseMacros(rawTarget, "targetMacros")
		if serr != nil {
			return nil, serr
		}
		plan.TargetMacros = macros
	}

	for i, rawMeal := range rawMeals {
		path := fmt.Sprintf("meals[%d]", i)
		obj, ok := rawMeal.(map[string]any)
		if !ok {
			return nil, &ShapeError{Path: path, Reason: "not an object"}
		}

		name, serr := requireString(obj, path, "name")
		if serr != nil {
			return nil, serr
		}
		mealTypeStr, serr := requireString(obj, path, "mealType")
		if serr != nil {
			return nil, serr
		}
		mealType := domain.MealType(mealTypeStr)
		switch mealType {
		case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack:
		default:
			return nil, &ShapeError{Path: path + ".mealType", Reason: fmt.Sprintf("unknown meal type %q", mealTypeStr)}
		}

		ingredients, serr := requireStringArray(obj, path, "ingredients")
		if serr != nil {
			return nil, serr
		}
		instructions, serr := requireStringArray(obj, path, "instructions")
		if serr != nil {
			return nil, serr
		}

		macros, serr := parseMacros(obj["macros"], path+".macros")
		if serr != nil {
			return nil, serr
		}

		prepTime, serr := requireInt(obj, path, "preparationTime")
		if serr != nil {
			return nil, serr
		}
		if prepTime < 0 {
			return nil, &ShapeError{Path: path + ".preparationTime", Reason: "must not be negative"}
		}

		meal := GeneratedMeal{
			Name:            name,
			MealType:        mealType,
			Ingredients:     ingredients,
			Macros:          *macros,
			PreparationTime: prepTime,
			Instructions:    instructions,
		}
		// Description and serving size are optional but type-checked when present.
		if v, present := obj["description"]; present {
			s, ok := v.(string)
			if !ok {
				return nil, &ShapeError{Path: path + ".description", Reason: "not a string"}
			}
			meal.Description = s
		}
		if v, present := obj["servingSize"]; present {
			s, ok := v.(string)
			if !ok {
				return nil, &ShapeError{Path: path + ".servingSize", Reason: "not a string"}
			}
			meal.ServingSize = s
		}

		plan.Meals = append(plan.Meals, meal)
	}
	return plan, nil
}

// --- Field helpers ---

func requireString(obj map[string]any, path, key string) (string, *ShapeError) {
	v, present := obj[key]
	if !present {
		return "", &ShapeError{Path: path + "." + key, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Path: path + "." + key, Reason: "not a string"}
	}
	if strings.TrimSpace(s) == "" {
		return "", &ShapeError{Path: path + "." + key, Reason: "must not be empty"}
	}
	return s, nil
}

func requireInt(obj map[string]any, path, key string) (int, *ShapeError) {
	v, present := obj[key]
	if !present {
		return 0, &ShapeError{Path: path + "." + key, Reason: "missing"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &ShapeError{Path: path + "." + key, Reason: "not a number"}
	}
	if f != math.Trunc(f) {
		return 0, &ShapeError{Path: path + "." + key, Reason: "not a whole number"}
	}
	return int(f), nil
}

func requirePositiveInt(obj map[string]any, path, key string) (int, *ShapeError) {
	n, serr := requireInt(obj, path, key)
	if serr != nil {
		return 0, serr
	}
	if n <= 0 {
		return 0, &ShapeError{Path: path + "." + key, Reason: "must be a positive number"}
	}
	return n, nil
}

func requireStringArray(obj map[string]any, path, key string) ([]string, *ShapeError) {
	v, present := obj[key]
	if !present {
		return nil, &ShapeError{Path: path + "." + key, Reason: "missing"}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Path: path + "." + key, Reason: "not an array"}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("%s.%s[%d]", path, key, i), Reason: "not a string"}
		}
		out = append(out, s)
	}
	return out, nil
}

func parseMacros(v any, path string) (*domain.MacroNutrients, *ShapeError) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ShapeError{Path: path, Reason: "missing or not an object"}
	}
	macros := &domain.MacroNutrients{}
	for key, target := range map[string]*float64{
		"protein":       &macros.Protein,
		"carbohydrates": &macros.Carbohydrates,
		"fats":          &macros.Fats,
		"calories":      &macros.Calories,
	} {
		raw, present := obj[key]
		if !present {
			return nil, &ShapeError{Path: path + "." + key, Reason: "missing"}
		}
		f, ok := raw.(float64)
		if !ok {
			return nil, &ShapeError{Path: path + "." + key, Reason: "not a number"}
		}
		if f < 0 {
			return nil, &ShapeError{Path: path + "." + key, Reason: "must not be negative"}
		}
		*target = f
	}
	return macros, nil
}
