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

// mongoProgramRepository implements repository.ProgramRepository. Default and
// custom programs are kept in parallel collections.
type mongoProgramRepository struct {
	db *mongo.Database
}

// NewMongoProgramRepository creates a new WorkoutProgram repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{db: db}
}

func (r *mongoProgramRepository) collection(kind domain.ProgramKind) *mongo.Collection {
	return kindCollection(r.db, programCollectionName, kind)
}

// Create inserts a new program.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if !program.Kind.Valid() || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires a kind and a name")
	}
	if program.Kind == domain.ProgramCustom && program.ProfileID == "" {
		return primitive.NilObjectID, errors.New("custom program requires a profile")
	}
	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	if _, err := r.collection(program.Kind).InsertOne(ctx, program); err != nil {
		return primitive.NilObjectID, err
	}
	return program.ID, nil
}

// GetByID retrieves a single program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	var program domain.WorkoutProgram
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

func (r *mongoProgramRepository) FindByName(ctx context.Context, kind domain.ProgramKind, profileID, name string) (*domain.WorkoutProgram, error) {
	filter := bson.M{"name": name}
	if kind == domain.ProgramCustom {
		filter["profileId"] = profileID
	}
	var program domain.WorkoutProgram
	err := r.collection(kind).FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

// List returns programs in creation order.
func (r *mongoProgramRepository) List(ctx context.Context, kind domain.ProgramKind, profileID string) ([]domain.WorkoutProgram, error) {
	filter := bson.M{}
	if kind == domain.ProgramCustom {
		filter["profileId"] = profileID
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection(kind).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := []domain.WorkoutProgram{}
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	if program.ID == primitive.NilObjectID {
		return errors.New("program ID is required for update")
	}
	program.UpdatedAt = time.Now().UTC()

	result, err := r.collection(program.Kind).UpdateOne(ctx,
		bson.M{"_id": program.ID},
		bson.M{"$set": bson.M{
			"name":        program.Name,
			"length":      program.Length,
			"description": program.Description,
			"updatedAt":   program.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProgramRepository) Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error {
	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProgramRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	_, err := r.collection(domain.ProgramCustom).DeleteMany(ctx, bson.M{"profileId": profileID})
	return err
}

// EnsureProgramIndexes creates necessary indexes. Call during startup.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
}
