package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleEntry is one exercise slot of a composed program. LoggedReps is
// nil when the profile has not logged the slot.
type ScheduleEntry struct {
	ID           primitive.ObjectID
	Exercise     primitive.ObjectID
	ExerciseName string
	Sets         int
	Reps         int
	Weight       int
	LoggedReps   domain.Reps
}

// Schedule nests entries as week -> day -> entries.
type Schedule = OrderedMap[*OrderedMap[[]ScheduleEntry]]

// Compose groups rows by week and day in the order they are encountered; it
// never sorts. logged maps day ids to the reps a profile logged against
// them and is nil for the anonymous catalog view.
func Compose(days []domain.WorkoutDay, exerciseNames map[primitive.ObjectID]string, logged map[primitive.ObjectID]domain.Reps) *Schedule {
	schedule := NewOrderedMap[*OrderedMap[[]ScheduleEntry]]()
	for _, d := range days {
		week := child(schedule, strconv.Itoa(d.Week))
		dayKey := strconv.Itoa(d.Day)
		entries, _ := week.Get(dayKey)

		entry := ScheduleEntry{
			ID:           d.ID,
			Exercise:     d.ExerciseID,
			ExerciseName: exerciseNames[d.ExerciseID],
			Sets:         d.Sets,
			Reps:         d.Reps,
			Weight:       d.Weight,
		}
		if reps, ok := logged[d.ID]; ok {
			entry.LoggedReps = reps
		}
		week.Set(dayKey, append(entries, entry))
	}
	return schedule
}

// composeProgram loads the rows of program and composes them. An empty
// profileID yields the anonymous view.
func (s *deps) composeProgram(ctx context.Context, program *domain.WorkoutProgram, profileID string) (*Schedule, error) {
	days, err := s.store.WorkoutDays.ListByProgram(ctx, program.Kind, program.ID)
	if err != nil {
		return nil, fmt.Errorf("list days of program %s: %w", program.ID.Hex(), err)
	}

	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, err
	}

	var logged map[primitive.ObjectID]domain.Reps
	if profileID != "" && len(days) > 0 {
		ids := make([]primitive.ObjectID, len(days))
		for i, d := range days {
			ids[i] = d.ID
		}
		logs, err := s.store.WorkoutLogs.ListByDays(ctx, program.Kind, profileID, ids)
		if err != nil {
			return nil, fmt.Errorf("list logs of program %s: %w", program.ID.Hex(), err)
		}
		logged = make(map[primitive.ObjectID]domain.Reps, len(logs))
		for _, l := range logs {
			if l.WorkoutDayID != nil {
				logged[*l.WorkoutDayID] = l.Reps
			}
		}
	}

	return Compose(days, names, logged), nil
}

func (s *deps) exerciseNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	exercises, err := s.store.Exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names, nil
}
