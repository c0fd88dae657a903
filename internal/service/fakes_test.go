package service

import (
	"context"
	"errors"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared across the service tests. They implement
// just enough of the repository contracts: ownership scoping, ErrNotFound,
// newest-first ordering.

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, exists := r.users[user.Email]; exists {
		return primitive.NilObjectID, errors.New("user with this email already exists")
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now().UTC()
	r.users[user.Email] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, avatarKey *string) error {
	for _, user := range r.users {
		if user.ID == id {
			user.Name = name
			if avatarKey != nil {
				user.AvatarKey = *avatarKey
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeWorkoutRepo struct {
	workouts []domain.Workout
	// failAfter triggers a Create error once this many workouts are stored.
	// Negative means never fail.
	failAfter int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{failAfter: -1}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if r.failAfter >= 0 && len(r.workouts) >= r.failAfter {
		return primitive.NilObjectID, errors.New("write concern error")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()
	workout.UpdatedAt = workout.CreatedAt
	r.workouts = append(r.workouts, *workout)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Workout, error) {
	for i := range r.workouts {
		if r.workouts[i].ID == id && r.workouts[i].UserID == userID {
			copied := r.workouts[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for i := len(r.workouts) - 1; i >= 0; i-- {
		if r.workouts[i].UserID == userID {
			out = append(out, r.workouts[i])
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) GetScheduledBetween(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID != userID || w.ScheduledDate == nil {
			continue
		}
		if !w.ScheduledDate.Before(from) && w.ScheduledDate.Before(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, id, userID primitive.ObjectID, patch repository.WorkoutPatch) error {
	for i := range r.workouts {
		if r.workouts[i].ID != id || r.workouts[i].UserID != userID {
			continue
		}
		w := &r.workouts[i]
		if patch.Title != nil {
			w.Title = *patch.Title
		}
		if patch.Description != nil {
			w.Description = *patch.Description
		}
		if patch.Exercises != nil {
			w.Exercises = patch.Exercises
		}
		if patch.ScheduledDate != nil {
			w.ScheduledDate = patch.ScheduledDate
		}
		if patch.Completed != nil {
			w.Completed = *patch.Completed
		}
		if patch.Difficulty != nil {
			w.Difficulty = *patch.Difficulty
		}
		w.UpdatedAt = time.Now().UTC()
		return nil
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) MarkComplete(_ context.Context, id, userID primitive.ObjectID, completedAt time.Time) error {
	for i := range r.workouts {
		if r.workouts[i].ID == id && r.workouts[i].UserID == userID {
			r.workouts[i].Completed = true
			r.workouts[i].CompletionDate = &completedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeNutritionRepo struct {
	plans     []domain.NutritionPlan
	createErr error
}

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{}
}

func (r *fakeNutritionRepo) Create(_ context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	r.plans = append(r.plans, *plan)
	return plan.ID, nil
}

func (r *fakeNutritionRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.NutritionPlan, error) {
	for i := range r.plans {
		if r.plans[i].ID == id && r.plans[i].UserID == userID {
			copied := r.plans[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeNutritionRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	var out []domain.NutritionPlan
	for i := len(r.plans) - 1; i >= 0; i-- {
		if r.plans[i].UserID == userID {
			out = append(out, r.plans[i])
		}
	}
	return out, nil
}

func (r *fakeNutritionRepo) Update(_ context.Context, id, userID primitive.ObjectID, patch repository.NutritionPlanPatch) error {
	for i := range r.plans {
		if r.plans[i].ID != id || r.plans[i].UserID != userID {
			continue
		}
		p := &r.plans[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.TargetCalories != nil {
			p.TargetCalories = *patch.TargetCalories
		}
		if patch.TargetMacros != nil {
			p.TargetMacros = *patch.TargetMacros
		}
		if patch.Meals != nil {
			p.Meals = patch.Meals
		}
		if patch.DietaryRestrictions != nil {
			p.DietaryRestrictions = patch.DietaryRestrictions
		}
		if patch.Preferences != nil {
			p.Preferences = patch.Preferences
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	}
	return repository.ErrNotFound
}

// fakeCompletionClient returns a fixed response or error.
type fakeCompletionClient struct {
	response string
	err      error
	calls    int
}

func (c *fakeCompletionClient) Complete(_ context.Context, _, _ string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}
