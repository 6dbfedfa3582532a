package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

const (
	profileCollectionName        = "profiles"
	programCollectionName        = "workout_programs"
	workoutDayCollectionName     = "workout_days"
	workoutLogCollectionName     = "workout_logs"
	personalRecordCollectionName = "personal_records"
	exerciseCollectionName       = "exercises"
	mediaCollectionName          = "media"
	foodLogCollectionName        = "food_logs"
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary: the connection may succeed while the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// kindCollection returns the collection holding rows of the given program
// kind. Default and custom rows live in parallel collections; the custom one
// carries a "custom_" prefix.
func kindCollection(db *mongo.Database, base string, kind domain.ProgramKind) *mongo.Collection {
	if kind == domain.ProgramCustom {
		return db.Collection("custom_" + base)
	}
	return db.Collection(base)
}

// NewStore wires every MongoDB repository against db. Transactions need a
// replica set (or sharded cluster) deployment.
func NewStore(client *mongo.Client, db *mongo.Database) repository.Store {
	return repository.Store{
		Tx:              NewTransactor(client),
		Profiles:        NewMongoProfileRepository(db),
		Programs:        NewMongoProgramRepository(db),
		WorkoutDays:     NewMongoWorkoutDayRepository(db),
		WorkoutLogs:     NewMongoWorkoutLogRepository(db),
		PersonalRecords: NewMongoPersonalRecordRepository(db),
		Exercises:       NewMongoExerciseRepository(db),
		Media:           NewMongoMediaRepository(db),
		FoodLogs:        NewMongoFoodLogRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Index creation also
// creates the collections, which transactions on older servers cannot do.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureProfileIndexes(ctx, db.Collection(profileCollectionName))
	for _, kind := range domain.ProgramKinds {
		EnsureProgramIndexes(ctx, kindCollection(db, programCollectionName, kind))
		EnsureWorkoutDayIndexes(ctx, kindCollection(db, workoutDayCollectionName, kind))
		EnsureWorkoutLogIndexes(ctx, kindCollection(db, workoutLogCollectionName, kind))
	}
	EnsurePersonalRecordIndexes(ctx, db.Collection(personalRecordCollectionName))
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsureMediaIndexes(ctx, db.Collection(mediaCollectionName))
	EnsureFoodLogIndexes(ctx, db.Collection(foodLogCollectionName))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
