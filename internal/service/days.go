package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayInput is one entry of a days payload: either a row to upsert, keyed by
// (week, day, exercise), or a delete marker for that key. Ranges are checked
// when the request is bound; targets are ignored on delete markers.
type DayInput struct {
	Week     int
	Day      int
	Exercise string
	Sets     int
	Reps     int
	Weight   int
	Delete   bool
}

type dayChange struct {
	key    domain.DayKey
	delete bool
	sets   int
	reps   int
	weight int
}

// resolveDays looks up the exercise of every entry before anything is
// written. Unknown exercises are reported under the days field, prefixed
// with the entry index.
func (s *deps) resolveDays(ctx context.Context, verr *ValidationError, inputs []DayInput) ([]dayChange, error) {
	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, err
	}

	changes := make([]dayChange, 0, len(inputs))
	for i, in := range inputs {
		exerciseID, err := primitive.ObjectIDFromHex(in.Exercise)
		if _, ok := names[exerciseID]; err != nil || !ok {
			verr.Addf("days", "[%d] exercise: "+msgDoesNotExist, i, in.Exercise)
			continue
		}
		change := dayChange{
			key:    domain.DayKey{Week: in.Week, Day: in.Day, ExerciseID: exerciseID},
			delete: in.Delete,
		}
		if !in.Delete {
			change.sets, change.reps, change.weight = in.Sets, in.Reps, in.Weight
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// applyDays writes validated changes to program. It must run inside the
// caller's transaction.
func (s *deps) applyDays(ctx context.Context, program *domain.WorkoutProgram, changes []dayChange) error {
	for _, c := range changes {
		if c.delete {
			existing, err := s.store.WorkoutDays.FindByKey(ctx, program.Kind, program.ID, c.key)
			if err != nil {
				return fmt.Errorf("find day: %w", err)
			}
			if existing == nil {
				continue
			}
			if err := s.store.WorkoutLogs.DetachDays(ctx, program.Kind, []primitive.ObjectID{existing.ID}); err != nil {
				return fmt.Errorf("detach logs: %w", err)
			}
			if err := s.store.WorkoutDays.Delete(ctx, program.Kind, existing.ID); err != nil {
				return fmt.Errorf("delete day: %w", err)
			}
			continue
		}

		day := &domain.WorkoutDay{
			Kind:       program.Kind,
			ProgramID:  program.ID,
			ProfileID:  program.ProfileID,
			Week:       c.key.Week,
			Day:        c.key.Day,
			ExerciseID: c.key.ExerciseID,
			Sets:       c.sets,
			Reps:       c.reps,
			Weight:     c.weight,
		}
		if err := s.store.WorkoutDays.Upsert(ctx, day); err != nil {
			return fmt.Errorf("upsert day: %w", err)
		}
	}
	return nil
}
