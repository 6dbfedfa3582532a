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

// mongoWorkoutDayRepository implements repository.WorkoutDayRepository
type mongoWorkoutDayRepository struct {
	db *mongo.Database
}

// NewMongoWorkoutDayRepository creates a new WorkoutDay repository.
func NewMongoWorkoutDayRepository(db *mongo.Database) repository.WorkoutDayRepository {
	return &mongoWorkoutDayRepository{db: db}
}

func (r *mongoWorkoutDayRepository) collection(kind domain.ProgramKind) *mongo.Collection {
	return kindCollection(r.db, workoutDayCollectionName, kind)
}

func keyFilter(programID primitive.ObjectID, key domain.DayKey) bson.M {
	return bson.M{
		"programId":  programID,
		"week":       key.Week,
		"day":        key.Day,
		"exerciseId": key.ExerciseID,
	}
}

func (r *mongoWorkoutDayRepository) findOne(ctx context.Context, kind domain.ProgramKind, filter bson.M) (*domain.WorkoutDay, error) {
	var day domain.WorkoutDay
	if err := r.collection(kind).FindOne(ctx, filter).Decode(&day); err != nil {
		return nil, err
	}
	return &day, nil
}

// GetByID retrieves a single day row by its ID.
func (r *mongoWorkoutDayRepository) GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutDay, error) {
	day, err := r.findOne(ctx, kind, bson.M{"_id": id})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return day, nil
}

func (r *mongoWorkoutDayRepository) FindByKey(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID, key domain.DayKey) (*domain.WorkoutDay, error) {
	day, err := r.findOne(ctx, kind, keyFilter(programID, key))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return day, nil
}

// ListByProgram retrieves all rows of a program sorted by week, day, then
// insertion order (ObjectIDs grow monotonically).
func (r *mongoWorkoutDayRepository) ListByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]domain.WorkoutDay, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "week", Value: 1},
		{Key: "day", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection(kind).Find(ctx, bson.M{"programId": programID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []domain.WorkoutDay{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Upsert writes the targets of the row keyed by (program, week, day, exercise).
func (r *mongoWorkoutDayRepository) Upsert(ctx context.Context, day *domain.WorkoutDay) error {
	if day.ProgramID == primitive.NilObjectID || day.ExerciseID == primitive.NilObjectID {
		return errors.New("workout day requires a program and an exercise")
	}

	onInsert := bson.M{"_id": primitive.NewObjectID(), "kind": day.Kind}
	if day.ProfileID != "" {
		onInsert["profileId"] = day.ProfileID
	}
	update := bson.M{
		"$set": bson.M{
			"sets":   day.Sets,
			"reps":   day.Reps,
			"weight": day.Weight,
		},
		"$setOnInsert": onInsert,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.WorkoutDay
	err := r.collection(day.Kind).FindOneAndUpdate(ctx, keyFilter(day.ProgramID, day.Key()), update, opts).Decode(&stored)
	if err != nil {
		return err
	}
	day.ID = stored.ID
	return nil
}

func (r *mongoWorkoutDayRepository) Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error {
	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutDayRepository) DeleteByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"programId": programID}
	cursor, err := r.collection(kind).Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err = r.collection(kind).DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *mongoWorkoutDayRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	_, err := r.collection(domain.ProgramCustom).DeleteMany(ctx, bson.M{"profileId": profileID})
	return err
}

// EnsureWorkoutDayIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutDayIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// The upsert key of the days payload.
			Keys: bson.D{
				{Key: "programId", Value: 1},
				{Key: "week", Value: 1},
				{Key: "day", Value: 1},
				{Key: "exerciseId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "profileId", Value: 1}}},
	})
}
