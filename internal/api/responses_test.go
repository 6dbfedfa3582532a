package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMapScheduleToResponse(t *testing.T) {
	squat, bench := primitive.NewObjectID(), primitive.NewObjectID()
	names := map[primitive.ObjectID]string{squat: "Squat", bench: "Bench"}
	day := func(week, d int, ex primitive.ObjectID) domain.WorkoutDay {
		return domain.WorkoutDay{ID: primitive.NewObjectID(), Week: week, Day: d, ExerciseID: ex, Sets: 5, Reps: 5, Weight: 100}
	}
	rows := []domain.WorkoutDay{day(2, 3, squat), day(1, 1, squat), day(2, 3, bench), day(2, 1, bench)}
	schedule := service.Compose(rows, names, map[primitive.ObjectID]domain.Reps{rows[1].ID: {5, 5, 4}})

	raw, err := json.Marshal(MapScheduleToResponse(schedule))
	require.NoError(t, err)
	assert.Regexp(t, `^\{"2":\{"3":\[.*\],"1":\[.*\]\},"1":\{"1":\[.*\]\}\}$`, string(raw))

	var decoded map[string]map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "5,5,4", decoded["1"]["1"][0]["logged_reps"])
	assert.Equal(t, "Squat", decoded["2"]["3"][0]["exercise_name"])
	assert.Equal(t, squat.Hex(), decoded["2"]["3"][0]["exercise"])
	_, has := decoded["2"]["3"][0]["logged_reps"]
	assert.False(t, has)

	raw, err = json.Marshal(MapProgramDetailToResponse(&service.ProgramDetail{
		Program: &domain.WorkoutProgram{Name: "Empty"},
		Days:    service.Compose(nil, nil, nil),
	}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"days":{}`)
}

func TestMapHistoryToResponse(t *testing.T) {
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Second)

	raw, err := json.Marshal(MapHistoryToResponse([]service.HistoryPoint{
		{Created: second, Weight: 70},
		{Created: first, Weight: 90},
	}))
	require.NoError(t, err)
	want := fmt.Sprintf(`[[%q,70],[%q,90]]`, second.Format(time.RFC3339Nano), first.Format(time.RFC3339Nano))
	assert.JSONEq(t, want, string(raw))

	raw, err = json.Marshal(MapHistoryToResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestMapMediaToResponse(t *testing.T) {
	exercise := primitive.NewObjectID()
	m := &service.ResolvedMedia{
		Media: domain.Media{ID: primitive.NewObjectID(), ExerciseID: exercise, Title: "Front", Visibility: domain.MediaPublic, ObjectKey: "photos/front.jpg"},
		URL:   "mock://download/front",
	}

	raw, err := json.Marshal(MapMediaToResponse(m))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+m.ID.Hex()+`","exercise":"`+exercise.Hex()+`","title":"Front","visibility":"public","download_url":"mock://download/front"}`, string(raw))

	raw, err = json.Marshal(MapMediaUploadToResponse(m))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+m.ID.Hex()+`","exercise":"`+exercise.Hex()+`","title":"Front","upload_url":"mock://download/front"}`, string(raw))

	list := service.NewOrderedMap[[]service.ResolvedMedia]()
	list.Set("video", []service.ResolvedMedia{})
	list.Set("photo", []service.ResolvedMedia{*m})
	raw, err = json.Marshal(MapMediaListToResponse(list))
	require.NoError(t, err)
	assert.Regexp(t, `^\{"video":\[\],"photo":\[\{"id":`, string(raw))
	assert.NotContains(t, string(raw), "photos/front.jpg")
}

func TestMapExerciseToResponse(t *testing.T) {
	photo := &service.ResolvedMedia{Media: domain.Media{ID: primitive.NewObjectID(), Title: "Squat"}, URL: "mock://download/squat"}
	view := service.ExerciseView{Exercise: domain.Exercise{ID: primitive.NewObjectID(), Name: "Squat", PrimaryMuscle: "Legs"}, Photo: photo}

	raw, err := json.Marshal(MapExercisesToResponse([]service.ExerciseView{view}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "`+view.ID.Hex()+`",
		"name": "Squat",
		"primary_muscle": "Legs",
		"photo": {"id": "`+photo.ID.Hex()+`", "title": "Squat", "download_url": "mock://download/squat"},
		"video": null
	}]`, string(raw))
}

func TestMapFoodLogGroupsToResponse(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()
	meals := service.NewOrderedMap[[]domain.FoodLog]()
	meals.Set("SNACK", []domain.FoodLog{{ID: id, ProfileID: "alice", Name: "Apple", Week: 2, Day: 1, Meal: domain.MealSnack, Calories: 80, Created: created}})
	meals.Set("BREAKFAST", []domain.FoodLog{})
	days := service.NewOrderedMap[*service.OrderedMap[[]domain.FoodLog]]()
	days.Set("1", meals)
	groups := service.NewOrderedMap[*service.OrderedMap[*service.OrderedMap[[]domain.FoodLog]]]()
	groups.Set("2", days)

	raw, err := json.Marshal(MapFoodLogGroupsToResponse(groups))
	require.NoError(t, err)
	assert.Equal(t, `{"2":{"1":{"SNACK":[{"id":"`+id.Hex()+`","name":"Apple","created":"2024-03-01T08:00:00Z","calories":80}],"BREAKFAST":[]}}}`, string(raw))
}
