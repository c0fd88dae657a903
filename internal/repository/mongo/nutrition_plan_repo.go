package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const nutritionPlanCollectionName = "nutrition_plans"

// mongoNutritionPlanRepository implements repository.NutritionPlanRepository
type mongoNutritionPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoNutritionPlanRepository creates a new NutritionPlan repository.
func NewMongoNutritionPlanRepository(db *mongo.Database) repository.NutritionPlanRepository {
	return &mongoNutritionPlanRepository{
		collection: db.Collection(nutritionPlanCollectionName),
	}
}

// Create inserts a new nutrition plan owned by plan.UserID.
func (r *mongoNutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Title == "" {
		return primitive.NilObjectID, errors.New("nutrition plan requires userId and title")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Meals == nil {
		plan.Meals = []domain.Meal{}
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan, scoped to its owner.
func (r *mongoNutritionPlanRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.NutritionPlan, error) {
	var plan domain.NutritionPlan
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, latest first.
func (r *mongoNutritionPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	var plans []domain.NutritionPlan
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.NutritionPlan{}
	}
	return plans, nil
}

// Update applies a partial field patch; last writer wins.
func (r *mongoNutritionPlanRepository) Update(ctx context.Context, id, userID primitive.ObjectID, patch repository.NutritionPlanPatch) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.TargetCalories != nil {
		set["targetCalories"] = *patch.TargetCalories
	}
	if patch.TargetMacros != nil {
		set["targetMacros"] = *patch.TargetMacros
	}
	if patch.Meals != nil {
		set["meals"] = patch.Meals
	}
	if patch.DietaryRestrictions != nil {
		set["dietaryRestrictions"] = patch.DietaryRestrictions
	}
	if patch.Preferences != nil {
		set["preferences"] = patch.Preferences
	}

	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNutritionPlanIndexes creates necessary indexes. Call during startup.
func EnsureNutritionPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
