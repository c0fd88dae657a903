package repository

import (
	"context"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatarKey *string) error
}

// WorkoutPatch is a partial update applied to a workout. Nil fields are left
// untouched. Last writer wins; there is no optimistic-concurrency check.
type WorkoutPatch struct {
	Title         *string
	Description   *string
	Exercises     []domain.Exercise
	ScheduledDate *time.Time
	Completed     *bool
	Difficulty    *domain.Difficulty
}

// WorkoutRepository defines the interface for interacting with workout data.
// All reads and writes are scoped to the owning user.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error)
	// GetByUserID returns the user's workouts ordered by creation time
	// descending; the first entry is the current plan.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	// GetScheduledBetween returns the user's workouts with a scheduled date in
	// [from, to), ordered by scheduled date ascending.
	GetScheduledBetween(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	Update(ctx context.Context, id, userID primitive.ObjectID, patch WorkoutPatch) error
	// MarkComplete sets the completed flag and stamps the completion date.
	MarkComplete(ctx context.Context, id, userID primitive.ObjectID, completedAt time.Time) error
}

// NutritionPlanPatch is a partial update applied to a nutrition plan.
type NutritionPlanPatch struct {
	Title               *string
	Description         *string
	TargetCalories      *int
	TargetMacros        *domain.MacroNutrients
	Meals               []domain.Meal
	DietaryRestrictions []string
	Preferences         []string
}

// NutritionPlanRepository defines the interface for interacting with
// nutrition plan data, scoped to the owning user.
type NutritionPlanRepository interface {
	Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.NutritionPlan, error)
	// GetByUserID returns the user's plans ordered by creation time descending.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionPlan, error)
	Update(ctx context.Context, id, userID primitive.ObjectID, patch NutritionPlanPatch) error
}
