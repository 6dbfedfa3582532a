package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("boom")

	err := store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Profiles.Create(ctx, &domain.Profile{ID: "a"}))
		// nested calls join the outer transaction
		return store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			require.NoError(t, store.Profiles.Create(ctx, &domain.Profile{ID: "b"}))
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	for _, id := range []string{"a", "b"} {
		_, err := store.Profiles.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound, id)
	}

	require.NoError(t, store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		return store.Profiles.Create(ctx, &domain.Profile{ID: "c"})
	}))
	_, err = store.Profiles.GetByID(ctx, "c")
	assert.NoError(t, err)
}

func TestWithTransaction_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("boom")
	bobDone := make(chan error, 1)

	err := store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := store.FoodLogs.Create(ctx, &domain.FoodLog{ProfileID: "alice", Name: "Oats", Week: 1, Day: 1, Meal: domain.MealBreakfast})
		require.NoError(t, err)

		go func() {
			_, err := store.FoodLogs.Create(context.Background(), &domain.FoodLog{ProfileID: "bob", Name: "Rice", Week: 1, Day: 1, Meal: domain.MealLunch})
			bobDone <- err
		}()
		// leave bob's write time to land before the rollback
		time.Sleep(50 * time.Millisecond)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, <-bobDone)

	alice, err := store.FoodLogs.ListByProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, alice)

	bob, err := store.FoodLogs.ListByProfile(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, "Rice", bob[0].Name)
}

func TestProfiles_Duplicate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Profiles.Create(ctx, &domain.Profile{ID: "a"}))
	assert.ErrorIs(t, store.Profiles.Create(ctx, &domain.Profile{ID: "a"}), repository.ErrDuplicate)
	assert.ErrorIs(t, store.Profiles.Update(ctx, &domain.Profile{ID: "z"}), repository.ErrNotFound)
}

func TestWorkoutDays_UpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	program := &domain.WorkoutProgram{Kind: domain.ProgramDefault, Name: "Base", Length: 2}
	_, err := store.Programs.Create(ctx, program)
	require.NoError(t, err)

	squat, bench := primitive.NewObjectID(), primitive.NewObjectID()
	rows := []domain.WorkoutDay{
		{Week: 2, Day: 1, ExerciseID: squat, Sets: 1, Reps: 1},
		{Week: 1, Day: 3, ExerciseID: bench, Sets: 1, Reps: 1},
		{Week: 1, Day: 3, ExerciseID: squat, Sets: 1, Reps: 1},
		{Week: 1, Day: 1, ExerciseID: squat, Sets: 1, Reps: 1},
	}
	for i := range rows {
		rows[i].Kind = domain.ProgramDefault
		rows[i].ProgramID = program.ID
		require.NoError(t, store.WorkoutDays.Upsert(ctx, &rows[i]))
	}

	again := domain.WorkoutDay{Kind: domain.ProgramDefault, ProgramID: program.ID, Week: 1, Day: 3, ExerciseID: bench, Sets: 5, Reps: 5, Weight: 60}
	require.NoError(t, store.WorkoutDays.Upsert(ctx, &again))
	assert.Equal(t, rows[1].ID, again.ID)

	days, err := store.WorkoutDays.ListByProgram(ctx, domain.ProgramDefault, program.ID)
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, []primitive.ObjectID{rows[3].ID, rows[1].ID, rows[2].ID, rows[0].ID},
		[]primitive.ObjectID{days[0].ID, days[1].ID, days[2].ID, days[3].ID})
	assert.Equal(t, 60, days[1].Weight)

	none, err := store.WorkoutDays.ListByProgram(ctx, domain.ProgramCustom, program.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := store.WorkoutDays.FindByKey(ctx, domain.ProgramDefault, program.ID, domain.DayKey{Week: 9, Day: 1, ExerciseID: squat})
	require.NoError(t, err)
	assert.Nil(t, found)

	ids, err := store.WorkoutDays.DeleteByProgram(ctx, domain.ProgramDefault, program.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

func TestPersonalRecords_OnePerExercise(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	exercise := primitive.NewObjectID()

	id, err := store.PersonalRecords.Create(ctx, &domain.PersonalRecord{ProfileID: "a", ExerciseID: exercise, Weight: 50})
	require.NoError(t, err)
	_, err = store.PersonalRecords.Create(ctx, &domain.PersonalRecord{ProfileID: "a", ExerciseID: exercise, Weight: 70})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, store.PersonalRecords.UpdateWeight(ctx, id, 80))
	record, err := store.PersonalRecords.Find(ctx, "a", exercise)
	require.NoError(t, err)
	assert.Equal(t, 80, record.Weight)

	record, err = store.PersonalRecords.Find(ctx, "b", exercise)
	require.NoError(t, err)
	assert.Nil(t, record)
}
