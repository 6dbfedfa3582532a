package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertPersonalRecord_IncreaseOnly(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	exerciseID := f.exercise(t, "Deadlift")
	repo := f.store.PersonalRecords

	record, outcome, err := UpsertPersonalRecord(f.ctx, repo, profileID, exerciseID, 100, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, 100, record.Weight)

	for _, w := range []int{100, 90, 0} {
		record, outcome, err = UpsertPersonalRecord(f.ctx, repo, profileID, exerciseID, w, true)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUnchanged, outcome, "weight %d", w)
		assert.Equal(t, 100, record.Weight)
	}

	record, outcome, err = UpsertPersonalRecord(f.ctx, repo, profileID, exerciseID, 110, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, 110, record.Weight)

	stored, err := repo.Find(f.ctx, profileID, exerciseID)
	require.NoError(t, err)
	assert.Equal(t, 110, stored.Weight)
}

func TestUpsertPersonalRecord_Overwrite(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	exerciseID := f.exercise(t, "Bench Press")
	repo := f.store.PersonalRecords

	_, _, err := UpsertPersonalRecord(f.ctx, repo, profileID, exerciseID, 80, false)
	require.NoError(t, err)

	for _, w := range []int{60, 60, 95} {
		record, outcome, err := UpsertPersonalRecord(f.ctx, repo, profileID, exerciseID, w, false)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, outcome)
		assert.Equal(t, w, record.Weight)
	}
}

func TestPutPersonalRecord(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	exerciseID := f.exercise(t, "Squat")

	record, outcome, err := f.services.PersonalRecords.PutPersonalRecord(f.ctx, profileID, PersonalRecordInput{Exercise: exerciseID.Hex(), Weight: 10})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, profileID, record.ProfileID)
	assert.Equal(t, 10, record.Weight)

	// the direct endpoint may lower a record
	record, outcome, err = f.services.PersonalRecords.PutPersonalRecord(f.ctx, profileID, PersonalRecordInput{Exercise: exerciseID.Hex(), Weight: 5})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, 5, record.Weight)

	records, err := f.services.PersonalRecords.ListPersonalRecords(f.ctx, profileID)
	require.NoError(t, err)
	weight, ok := records.Get(exerciseID.Hex())
	require.True(t, ok)
	assert.Equal(t, 5, weight)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterPersonalRecords.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterPersonalRecords.WithLabelValues("updated")))
}

func TestPutPersonalRecord_Validation(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)

	_, _, err := f.services.PersonalRecords.PutPersonalRecord(f.ctx, profileID, PersonalRecordInput{Exercise: "nope"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{`Invalid pk "nope" - object does not exist.`}, verr.Fields["exercise"])
	assert.Len(t, verr.Fields, 1)

	_, _, err = f.services.PersonalRecords.PutPersonalRecord(f.ctx, profileID, PersonalRecordInput{Exercise: primitive.NewObjectID().Hex(), Weight: 10})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "exercise")

	records, err := f.store.PersonalRecords.ListByProfile(f.ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// racingRecords commits a competing record right before the first create,
// as a concurrent request would.
type racingRecords struct {
	repository.PersonalRecordRepository
	raced int
}

func (r *racingRecords) Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error) {
	if r.raced == 0 {
		r.raced++
		rival := &domain.PersonalRecord{ProfileID: record.ProfileID, ExerciseID: record.ExerciseID, Weight: 1}
		if _, err := r.PersonalRecordRepository.Create(ctx, rival); err != nil {
			return primitive.NilObjectID, err
		}
	}
	return r.PersonalRecordRepository.Create(ctx, record)
}

func (f *fixture) withRacingRecords() *racingRecords {
	racing := &racingRecords{PersonalRecordRepository: f.store.PersonalRecords}
	f.store.PersonalRecords = racing
	f.services = New(Dependencies{Store: f.store, Files: f.files, Metrics: f.metrics})
	return racing
}

func TestUpsertPersonalRecord_ConflictIsReturned(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	exerciseID := f.exercise(t, "Squat")
	racing := f.withRacingRecords()

	_, _, err := UpsertPersonalRecord(f.ctx, racing, profileID, exerciseID, 100, true)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	record, err := racing.Find(f.ctx, profileID, exerciseID)
	require.NoError(t, err)
	assert.Equal(t, 1, record.Weight)
}

func TestPutPersonalRecord_RetriesLostCreate(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	exerciseID := f.exercise(t, "Squat")
	f.withRacingRecords()

	record, outcome, err := f.services.PersonalRecords.PutPersonalRecord(f.ctx, profileID, PersonalRecordInput{Exercise: exerciseID.Hex(), Weight: 40})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, 40, record.Weight)

	records, err := f.store.PersonalRecords.ListByProfile(f.ctx, profileID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 40, records[0].Weight)
}

func TestPutWorkoutLog_RetriesConflictingTransaction(t *testing.T) {
	f := newFixture(t)
	profileID := f.profile(t)
	squat := f.exercise(t, "Squat")
	def := f.defaultProgram(t, "Catalog", domain.WorkoutDay{Week: 1, Day: 1, ExerciseID: squat, Sets: 3, Reps: 5, Weight: 100})
	days, err := f.store.WorkoutDays.ListByProgram(f.ctx, domain.ProgramDefault, def.ID)
	require.NoError(t, err)
	racing := f.withRacingRecords()

	entry, err := f.services.WorkoutLogs.PutWorkoutLog(f.ctx, profileID, domain.ProgramDefault, WorkoutLogInput{WorkoutDay: days[0].ID.Hex(), Reps: domain.Reps{5, 5, 5}})
	require.NoError(t, err)
	assert.Equal(t, 1, racing.raced)

	logs, err := f.store.WorkoutLogs.ListByDays(f.ctx, domain.ProgramDefault, profileID, []primitive.ObjectID{days[0].ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)

	record, err := f.store.PersonalRecords.Find(f.ctx, profileID, squat)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 100, record.Weight)
}
