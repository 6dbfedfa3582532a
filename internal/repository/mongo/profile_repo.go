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
)

// mongoProfileRepository implements repository.ProfileRepository
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new Profile repository backed by MongoDB.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Create inserts a profile. The identity id is the document _id, so a second
// profile for the same identity fails with ErrDuplicate.
func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		return errors.New("profile requires an identity id")
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves a profile by its identity id.
func (r *mongoProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update replaces the mutable fields of a profile.
func (r *mongoProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"goal":       profile.Goal,
		"experience": profile.Experience,
		"weight":     profile.Weight,
		"height":     profile.Height,
		"updatedAt":  profile.UpdatedAt,
	}
	unset := bson.M{}
	if profile.CurrentWorkoutProgram != nil {
		set["currentWorkoutProgram"] = *profile.CurrentWorkoutProgram
	} else {
		unset["currentWorkoutProgram"] = ""
	}
	if profile.CurrentCustomWorkoutProgram != nil {
		set["currentCustomWorkoutProgram"] = *profile.CurrentCustomWorkoutProgram
	} else {
		unset["currentCustomWorkoutProgram"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProfileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProfileRepository) ClearCustomProgram(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"currentCustomWorkoutProgram": programID},
		bson.M{
			"$unset": bson.M{"currentCustomWorkoutProgram": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "currentCustomWorkoutProgram", Value: 1}}},
	})
}
