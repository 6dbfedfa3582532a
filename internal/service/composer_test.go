package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompose_KeepsEncounterOrder(t *testing.T) {
	squat, bench := primitive.NewObjectID(), primitive.NewObjectID()
	names := map[primitive.ObjectID]string{squat: "Squat", bench: "Bench"}
	day := func(week, d int, ex primitive.ObjectID) domain.WorkoutDay {
		return domain.WorkoutDay{ID: primitive.NewObjectID(), Week: week, Day: d, ExerciseID: ex, Sets: 5, Reps: 5, Weight: 100}
	}
	// deliberately unsorted: the composer must not reorder
	rows := []domain.WorkoutDay{day(2, 3, squat), day(1, 1, squat), day(2, 3, bench), day(2, 1, bench)}

	schedule := Compose(rows, names, nil)
	assert.Equal(t, []string{"2", "1"}, schedule.Keys())

	week2, ok := schedule.Get("2")
	require.True(t, ok)
	assert.Equal(t, []string{"3", "1"}, week2.Keys())

	entries, _ := week2.Get("3")
	require.Len(t, entries, 2)
	assert.Equal(t, "Squat", entries[0].ExerciseName)
	assert.Equal(t, "Bench", entries[1].ExerciseName)
	assert.Nil(t, entries[0].LoggedReps)
	assert.Equal(t, rows[0].ID, entries[0].ID)
	assert.Equal(t, squat, entries[0].Exercise)

	week1, _ := schedule.Get("1")
	assert.Equal(t, []string{"1"}, week1.Keys())
}

func TestCompose_AnnotatesLoggedReps(t *testing.T) {
	ex := primitive.NewObjectID()
	logged := domain.WorkoutDay{ID: primitive.NewObjectID(), Week: 1, Day: 1, ExerciseID: ex, Sets: 3, Reps: 5}
	fresh := domain.WorkoutDay{ID: primitive.NewObjectID(), Week: 1, Day: 2, ExerciseID: ex, Sets: 3, Reps: 5}

	schedule := Compose([]domain.WorkoutDay{logged, fresh}, nil, map[primitive.ObjectID]domain.Reps{
		logged.ID: {5, 5, 4},
	})

	week, ok := schedule.Get("1")
	require.True(t, ok)
	first, _ := week.Get("1")
	second, _ := week.Get("2")
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, domain.Reps{5, 5, 4}, first[0].LoggedReps)
	assert.Nil(t, second[0].LoggedReps)
	assert.Empty(t, first[0].ExerciseName)
}

func TestMapOrdered_KeepsOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("z", 1)
	m.Set("a", 2)

	doubled := MapOrdered(m, func(v int) int { return v * 2 })
	assert.Equal(t, []string{"z", "a"}, doubled.Keys())
	v, _ := doubled.Get("a")
	assert.Equal(t, 4, v)

	assert.Nil(t, MapOrdered[int, int](nil, func(v int) int { return v }))
}

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":3,"a":2}`, string(raw))
	assert.Equal(t, 2, m.Len())

	var zero OrderedMap[string]
	zero.Set("x", "y")
	raw, err = json.Marshal(&zero)
	require.NoError(t, err)
	assert.Equal(t, `{"x":"y"}`, string(raw))
}
