package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	ctx      context.Context
	store    repository.Store
	files    *storage.MemoryStorage
	metrics  *metrics.Manager
	services *Services
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		store:   memory.NewStore(),
		files:   storage.NewMemoryStorage("test-bucket"),
		metrics: metrics.NewTestManager(),
		clock:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.services = New(Dependencies{
		Store:   f.store,
		Files:   f.files,
		Metrics: f.metrics,
		Now: func() time.Time {
			f.clock = f.clock.Add(time.Minute)
			return f.clock
		},
	})
	return f
}

func (f *fixture) profile(t *testing.T) string {
	t.Helper()
	id := gofakeit.UUID()
	_, err := f.services.Profiles.CreateProfile(f.ctx, id, ProfileInput{
		Goal:       gofakeit.RandomString([]string{"strength", "endurance", "weight loss"}),
		Experience: gofakeit.RandomString([]string{"novice", "intermediate"}),
		Weight:     gofakeit.Number(50, 120),
		Height:     gofakeit.Number(150, 200),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) exercise(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	e := &domain.Exercise{Name: name, PrimaryMuscle: "Legs"}
	require.NoError(t, f.store.Exercises.UpsertByName(f.ctx, e))
	return e.ID
}

func (f *fixture) defaultProgram(t *testing.T, name string, days ...domain.WorkoutDay) *domain.WorkoutProgram {
	t.Helper()
	p := &domain.WorkoutProgram{Kind: domain.ProgramDefault, Name: name, Length: 4}
	_, err := f.store.Programs.Create(f.ctx, p)
	require.NoError(t, err)
	for i := range days {
		days[i].Kind = domain.ProgramDefault
		days[i].ProgramID = p.ID
		require.NoError(t, f.store.WorkoutDays.Upsert(f.ctx, &days[i]))
	}
	return p
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
