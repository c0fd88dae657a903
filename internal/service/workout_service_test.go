package service

import (
	"context"
	"testing"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleWorkout() domain.Workout {
	return domain.Workout{
		Title:      "Morning Strength",
		Type:       domain.WorkoutTypeStrength,
		Difficulty: domain.DifficultyBeginner,
		Exercises: []domain.Exercise{
			{Name: "Squats", Sets: 3, Reps: 10},
		},
	}
}

func TestCreateWorkout(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	userID := primitive.NewObjectID()

	in := sampleWorkout()
	in.Completed = true // must be reset server-side
	in.UserID = primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), userID, in)
	require.NoError(t, err)

	assert.Equal(t, userID, created.UserID, "owner comes from the token, not the payload")
	assert.False(t, created.Completed)
	assert.False(t, created.ID.IsZero())
}

func TestCreateWorkout_Validation(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo())
	userID := primitive.NewObjectID()

	t.Run("missing title", func(t *testing.T) {
		w := sampleWorkout()
		w.Title = ""
		_, err := svc.CreateWorkout(context.Background(), userID, w)
		assert.ErrorIs(t, err, ErrWorkoutValidationFailed)
	})

	t.Run("non-positive sets", func(t *testing.T) {
		w := sampleWorkout()
		w.Exercises[0].Sets = 0
		_, err := svc.CreateWorkout(context.Background(), userID, w)
		assert.ErrorIs(t, err, ErrWorkoutValidationFailed)
	})

	t.Run("rest day skips exercise checks", func(t *testing.T) {
		w := domain.Workout{
			Title:      "Rest Day",
			Type:       domain.WorkoutTypeStrength,
			Difficulty: domain.DifficultyBeginner,
			IsRestDay:  true,
		}
		_, err := svc.CreateWorkout(context.Background(), userID, w)
		assert.NoError(t, err)
	})
}

func TestGetWorkoutByID_OwnershipScoped(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), owner, sampleWorkout())
	require.NoError(t, err)

	// Another user must not be able to see the workout.
	_, err = svc.GetWorkoutByID(context.Background(), primitive.NewObjectID(), created.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	got, err := svc.GetWorkoutByID(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateWorkout(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	userID := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), userID, sampleWorkout())
	require.NoError(t, err)

	newTitle := "Evening Strength"
	updated, err := svc.UpdateWorkout(context.Background(), userID, created.ID, repository.WorkoutPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Evening Strength", updated.Title)
	assert.Equal(t, created.Exercises, updated.Exercises, "omitted fields stay unchanged")
}

func TestUpdateWorkout_RejectsEmptyTitle(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo())
	empty := ""

	_, err := svc.UpdateWorkout(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), repository.WorkoutPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrWorkoutValidationFailed)
}

func TestCompleteWorkout(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	userID := primitive.NewObjectID()

	created, err := svc.CreateWorkout(context.Background(), userID, sampleWorkout())
	require.NoError(t, err)

	completed, err := svc.CompleteWorkout(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	require.NotNil(t, completed.CompletionDate, "a completed workout always carries a completion date")
	assert.WithinDuration(t, time.Now().UTC(), *completed.CompletionDate, time.Minute)
}

func TestCompleteWorkout_NotFound(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo())

	_, err := svc.CompleteWorkout(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestGetScheduled(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	userID := primitive.NewObjectID()

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 2, 10} {
		w := sampleWorkout()
		date := base.AddDate(0, 0, offset)
		w.ScheduledDate = &date
		_, err := svc.CreateWorkout(context.Background(), userID, w)
		require.NoError(t, err)
	}

	got, err := svc.GetScheduled(context.Background(), userID, base, base.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, got, 2, "only entries inside [from, to) are returned")

	_, err = svc.GetScheduled(context.Background(), userID, base, base)
	assert.Error(t, err, "empty range is rejected")
}
