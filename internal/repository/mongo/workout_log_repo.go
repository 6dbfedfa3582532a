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

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	db *mongo.Database
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{db: db}
}

func (r *mongoWorkoutLogRepository) collection(kind domain.ProgramKind) *mongo.Collection {
	return kindCollection(r.db, workoutLogCollectionName, kind)
}

func (r *mongoWorkoutLogRepository) Find(ctx context.Context, kind domain.ProgramKind, profileID string, dayID primitive.ObjectID) (*domain.WorkoutLog, error) {
	var workoutLog domain.WorkoutLog
	err := r.collection(kind).FindOne(ctx, bson.M{"profileId": profileID, "workoutDayId": dayID}).Decode(&workoutLog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &workoutLog, nil
}

// Upsert creates or overwrites the log of (profile, day).
func (r *mongoWorkoutLogRepository) Upsert(ctx context.Context, workoutLog *domain.WorkoutLog) error {
	if workoutLog.ProfileID == "" || workoutLog.WorkoutDayID == nil {
		return errors.New("workout log requires a profile and a workout day")
	}

	filter := bson.M{"profileId": workoutLog.ProfileID, "workoutDayId": *workoutLog.WorkoutDayID}
	update := bson.M{
		"$set": bson.M{
			"exerciseId": workoutLog.ExerciseID,
			"weight":     workoutLog.Weight,
			"reps":       workoutLog.Reps,
			"created":    workoutLog.Created,
		},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "kind": workoutLog.Kind},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.WorkoutLog
	if err := r.collection(workoutLog.Kind).FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return err
	}
	workoutLog.ID = stored.ID
	return nil
}

func (r *mongoWorkoutLogRepository) list(ctx context.Context, kind domain.ProgramKind, filter bson.M) ([]domain.WorkoutLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection(kind).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.WorkoutLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *mongoWorkoutLogRepository) ListByDays(ctx context.Context, kind domain.ProgramKind, profileID string, dayIDs []primitive.ObjectID) ([]domain.WorkoutLog, error) {
	if len(dayIDs) == 0 {
		return []domain.WorkoutLog{}, nil
	}
	return r.list(ctx, kind, bson.M{"profileId": profileID, "workoutDayId": bson.M{"$in": dayIDs}})
}

func (r *mongoWorkoutLogRepository) ListByExercise(ctx context.Context, kind domain.ProgramKind, profileID string, exerciseID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return r.list(ctx, kind, bson.M{"profileId": profileID, "exerciseId": exerciseID})
}

func (r *mongoWorkoutLogRepository) DetachDays(ctx context.Context, kind domain.ProgramKind, dayIDs []primitive.ObjectID) error {
	if len(dayIDs) == 0 {
		return nil
	}
	_, err := r.collection(kind).UpdateMany(ctx,
		bson.M{"workoutDayId": bson.M{"$in": dayIDs}},
		bson.M{"$unset": bson.M{"workoutDayId": ""}},
	)
	return err
}

func (r *mongoWorkoutLogRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	for _, kind := range domain.ProgramKinds {
		if _, err := r.collection(kind).DeleteMany(ctx, bson.M{"profileId": profileID}); err != nil {
			return err
		}
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// One log per (profile, day); detached logs are exempt.
			Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "workoutDayId", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"workoutDayId": bson.M{"$type": "objectId"}},
			),
		},
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "created", Value: 1}}},
	})
}
