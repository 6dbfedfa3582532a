package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoFoodLogRepository implements repository.FoodLogRepository
type mongoFoodLogRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodLogRepository creates a new FoodLog repository.
func NewMongoFoodLogRepository(db *mongo.Database) repository.FoodLogRepository {
	return &mongoFoodLogRepository{
		collection: db.Collection(foodLogCollectionName),
	}
}

func (r *mongoFoodLogRepository) Create(ctx context.Context, foodLog *domain.FoodLog) (primitive.ObjectID, error) {
	if foodLog.ProfileID == "" {
		return primitive.NilObjectID, errors.New("food log requires a profile")
	}
	foodLog.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, foodLog); err != nil {
		return primitive.NilObjectID, err
	}
	return foodLog.ID, nil
}

func (r *mongoFoodLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodLog, error) {
	var foodLog domain.FoodLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&foodLog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &foodLog, nil
}

func (r *mongoFoodLogRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.FoodLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"profileId": profileID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.FoodLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *mongoFoodLogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoFoodLogRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"profileId": profileID})
	return err
}

// EnsureFoodLogIndexes creates necessary indexes. Call during startup.
func EnsureFoodLogIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "created", Value: 1}}},
	})
}
