package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencies_BuildDefaults(t *testing.T) {
	built := Dependencies{Store: memory.NewStore()}.build()
	require.NotNil(t, built.metrics)
	assert.Equal(t, storage.DefaultPresignedURLExpiry, built.urlExpiry)
	assert.Equal(t, time.UTC, built.now().Location())

	// two services built without a manager do not share collectors
	other := Dependencies{Store: memory.NewStore()}.build()
	built.metrics.CounterWorkoutLogs.WithLabelValues(domain.ProgramCustom.String()).Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(other.metrics.CounterWorkoutLogs.WithLabelValues(domain.ProgramCustom.String())))
}

func TestNew_WithoutMetrics(t *testing.T) {
	store := memory.NewStore()
	services := New(Dependencies{Store: store, Files: storage.NewMemoryStorage("test-bucket")})
	_, err := services.Profiles.CreateProfile(context.Background(), "alice", ProfileInput{Goal: "strength"})
	require.NoError(t, err)
	squat := &domain.Exercise{Name: "Squat"}
	require.NoError(t, store.Exercises.UpsertByName(context.Background(), squat))

	// recording the outcome counter must not need a caller-supplied manager
	_, outcome, err := services.PersonalRecords.PutPersonalRecord(context.Background(), "alice", PersonalRecordInput{Exercise: squat.ID.Hex(), Weight: 60})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
}
