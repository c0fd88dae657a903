package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType slots a meal into the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// DietType restricts what kind of meals a plan may contain.
type DietType string

const (
	DietBalanced    DietType = "balanced"
	DietLowCarb     DietType = "lowCarb"
	DietHighProtein DietType = "highProtein"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "vegan"
	DietKeto        DietType = "keto"
)

// MacroNutrients is a macro breakdown. All quantities are non-negative.
// Calories is supplied independently, not derived from the other fields.
type MacroNutrients struct {
	Protein       float64 `bson:"protein" json:"protein"`             // grams
	Carbohydrates float64 `bson:"carbohydrates" json:"carbohydrates"` // grams
	Fats          float64 `bson:"fats" json:"fats"`                   // grams
	Calories      float64 `bson:"calories" json:"calories"`
}

// Meal is one meal inside a nutrition plan, embedded in order.
type Meal struct {
	Name            string         `bson:"name" json:"name"`
	Description     string         `bson:"description,omitempty" json:"description,omitempty"`
	MealType        MealType       `bson:"mealType" json:"mealType"`
	Ingredients     []string       `bson:"ingredients" json:"ingredients"`
	ServingSize     string         `bson:"servingSize,omitempty" json:"servingSize,omitempty"`
	Macros          MacroNutrients `bson:"macros" json:"macros"`
	PreparationTime int            `bson:"preparationTime" json:"preparationTime"` // minutes
	Instructions    []string       `bson:"instructions" json:"instructions"`
}

// NutritionPlan represents a daily meal plan belonging to a user.
type NutritionPlan struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"userId" json:"userId"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetCalories      int                `bson:"targetCalories" json:"targetCalories"`
	TargetMacros        MacroNutrients     `bson:"targetMacros" json:"targetMacros"`
	Meals               []Meal             `bson:"meals" json:"meals"`
	DietaryRestrictions []string           `bson:"dietaryRestrictions,omitempty" json:"dietaryRestrictions,omitempty"`
	Preferences         []string           `bson:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
