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

// mongoMediaRepository implements repository.MediaRepository
type mongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new Media repository backed by MongoDB.
func NewMongoMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mongoMediaRepository{
		collection: db.Collection(mediaCollectionName),
	}
}

// Create inserts new media metadata into the database.
func (r *mongoMediaRepository) Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error) {
	if !media.Kind.Valid() || media.ObjectKey == "" || media.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("media requires a kind, an exercise and an object key")
	}
	if media.Visibility == domain.MediaUploaded && media.ProfileID == "" {
		return primitive.NilObjectID, errors.New("uploaded media requires a profile")
	}
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, media); err != nil {
		return primitive.NilObjectID, err
	}
	return media.ID, nil
}

// GetByID retrieves media metadata of the given kind by its ID.
func (r *mongoMediaRepository) GetByID(ctx context.Context, kind domain.MediaKind, id primitive.ObjectID) (*domain.Media, error) {
	var media domain.Media
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "kind": kind}).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *mongoMediaRepository) List(ctx context.Context, kind domain.MediaKind, visibility domain.MediaVisibility, profileID string) ([]domain.Media, error) {
	filter := bson.M{"kind": kind, "visibility": visibility}
	if visibility == domain.MediaUploaded {
		filter["profileId"] = profileID
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	media := []domain.Media{}
	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mongoMediaRepository) FindPublicByKey(ctx context.Context, objectKey string) (*domain.Media, error) {
	var media domain.Media
	err := r.collection.FindOne(ctx, bson.M{"objectKey": objectKey, "visibility": domain.MediaPublic}).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (r *mongoMediaRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMediaRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"profileId": profileID, "visibility": domain.MediaUploaded})
	return err
}

// EnsureMediaIndexes creates necessary indexes for the media collection.
func EnsureMediaIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "visibility", Value: 1}, {Key: "profileId", Value: 1}}},
		{
			// Object keys are unique within the bucket.
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
