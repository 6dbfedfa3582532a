package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPersonalRecordRepository implements repository.PersonalRecordRepository
type mongoPersonalRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoPersonalRecordRepository creates a new PersonalRecord repository.
func NewMongoPersonalRecordRepository(db *mongo.Database) repository.PersonalRecordRepository {
	return &mongoPersonalRecordRepository{
		collection: db.Collection(personalRecordCollectionName),
	}
}

func (r *mongoPersonalRecordRepository) Find(ctx context.Context, profileID string, exerciseID primitive.ObjectID) (*domain.PersonalRecord, error) {
	var record domain.PersonalRecord
	err := r.collection.FindOne(ctx, bson.M{"profileId": profileID, "exerciseId": exerciseID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *mongoPersonalRecordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error) {
	if record.ProfileID == "" || record.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("personal record requires a profile and an exercise")
	}
	record.ID = primitive.NewObjectID()
	record.UpdatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return record.ID, nil
}

func (r *mongoPersonalRecordRepository) UpdateWeight(ctx context.Context, id primitive.ObjectID, weight int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"weight": weight, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoPersonalRecordRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.PersonalRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"profileId": profileID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.PersonalRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoPersonalRecordRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"profileId": profileID})
	return err
}

// EnsurePersonalRecordIndexes creates necessary indexes. Call during startup.
func EnsurePersonalRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
