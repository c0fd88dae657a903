package service

import (
	"context"
	"errors"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutValidationFailed = errors.New("workout validation failed")
)

// --- Service Interface ---
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, workout domain.Workout) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, patch repository.WorkoutPatch) (*domain.Workout, error)
	CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	GetScheduled(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
	}
}

// validateExercises enforces the positive sets/reps invariant on manually
// submitted workouts. Generated workouts are already shape-validated.
func validateExercises(exercises []domain.Exercise) error {
	for _, ex := range exercises {
		if ex.Name == "" {
			return errors.New("exercise name is required")
		}
		if ex.Sets <= 0 || ex.Reps <= 0 {
			return errors.New("exercise sets and reps must be positive")
		}
	}
	return nil
}

// CreateWorkout persists a workout submitted directly by the user. The owner
// identity is attached server-side; the incoming UserID is ignored.
func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, workout domain.Workout) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a workout")
	}
	if workout.Title == "" {
		return nil, ErrWorkoutValidationFailed
	}
	if !workout.IsRestDay {
		if err := validateExercises(workout.Exercises); err != nil {
			return nil, errors.Join(ErrWorkoutValidationFailed, err)
		}
	}

	workout.UserID = userID
	workout.Completed = false
	workout.CompletionDate = nil

	workoutID, err := s.workoutRepo.Create(ctx, &workout)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, workoutID, userID)
}

// GetWorkouts returns the user's workout history, latest first.
func (s *workoutService) GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// GetWorkoutByID retrieves a single workout owned by the user.
func (s *workoutService) GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// UpdateWorkout applies a partial field patch. No optimistic-concurrency
// check; last writer wins.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, patch repository.WorkoutPatch) (*domain.Workout, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrWorkoutValidationFailed
	}
	if patch.Exercises != nil {
		if err := validateExercises(patch.Exercises); err != nil {
			return nil, errors.Join(ErrWorkoutValidationFailed, err)
		}
	}

	err := s.workoutRepo.Update(ctx, workoutID, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, workoutID, userID)
}

// CompleteWorkout marks a workout done and stamps the completion date, so a
// completed workout always carries one.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	err := s.workoutRepo.MarkComplete(ctx, workoutID, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, workoutID, userID)
}

// GetScheduled returns the user's workouts scheduled in [from, to) for the
// calendar view.
func (s *workoutService) GetScheduled(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	if !to.After(from) {
		return nil, errors.New("calendar range end must be after start")
	}
	return s.workoutRepo.GetScheduledBetween(ctx, userID, from, to)
}
