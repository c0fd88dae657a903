package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType classifies a workout session.
type WorkoutType string

const (
	WorkoutTypeStrength    WorkoutType = "strength"
	WorkoutTypeCardio      WorkoutType = "cardio"
	WorkoutTypeFlexibility WorkoutType = "flexibility"
	WorkoutTypeCustom      WorkoutType = "custom"
)

// Difficulty level of a workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// SplitType describes how workouts in a weekly plan divide muscle groups.
type SplitType string

const (
	SplitFullBody   SplitType = "fullBody"
	SplitUpperLower SplitType = "upperLower"
	SplitCustom     SplitType = "custom"
)

// Workout represents a single workout session belonging to a user.
// Exercises are embedded in order; rest days carry an empty exercise list.
type Workout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises      []Exercise         `bson:"exercises" json:"exercises"`
	ScheduledDate  *time.Time         `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	Completed      bool               `bson:"completed" json:"completed"`
	CompletionDate *time.Time         `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
	Type           WorkoutType        `bson:"type" json:"type"`
	Difficulty     Difficulty         `bson:"difficulty" json:"difficulty"`
	SplitType      SplitType          `bson:"splitType,omitempty" json:"splitType,omitempty"`
	IsRestDay      bool               `bson:"isRestDay" json:"isRestDay"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
