package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const fieldWorkoutDay = "workout_day"

// WorkoutLogInput is the body of a workout log submission.
type WorkoutLogInput struct {
	WorkoutDay string
	Reps       domain.Reps
}

// HistoryPoint is one (created, weight) sample of an exercise's history.
type HistoryPoint struct {
	Created time.Time
	Weight  int
}

type WorkoutLogService interface {
	// PutWorkoutLog stores the profile's log for a day and raises the
	// personal record for the day's exercise, atomically.
	PutWorkoutLog(ctx context.Context, profileID string, kind domain.ProgramKind, input WorkoutLogInput) (*domain.WorkoutLog, error)
	// History lists default logs then custom logs for an exercise, each
	// ordered by creation time.
	History(ctx context.Context, profileID, exerciseID string) ([]HistoryPoint, error)
}

type workoutLogService struct {
	*deps
}

func NewWorkoutLogService(d Dependencies) WorkoutLogService {
	return &workoutLogService{deps: d.build()}
}

func (s *workoutLogService) workoutDay(ctx context.Context, verr *ValidationError, kind domain.ProgramKind, raw, profileID string) (*domain.WorkoutDay, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		verr.Add(fieldWorkoutDay, "Workout day does not exist.")
		return nil, nil
	}
	day, err := s.store.WorkoutDays.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verr.Add(fieldWorkoutDay, "Workout day does not exist.")
			return nil, nil
		}
		return nil, fmt.Errorf("get workout day: %w", err)
	}
	if kind == domain.ProgramCustom && day.ProfileID != profileID {
		verr.Add(fieldWorkoutDay, "Workout day does not belong to you.")
		return nil, nil
	}
	return day, nil
}

func (s *workoutLogService) PutWorkoutLog(ctx context.Context, profileID string, kind domain.ProgramKind, input WorkoutLogInput) (*domain.WorkoutLog, error) {
	verr := &ValidationError{}
	day, err := s.workoutDay(ctx, verr, kind, input.WorkoutDay, profileID)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var entry *domain.WorkoutLog
	var outcome Outcome
	err = retryOnConflict(func() error {
		entry = &domain.WorkoutLog{
			Kind:         kind,
			ProfileID:    profileID,
			WorkoutDayID: &day.ID,
			ExerciseID:   day.ExerciseID,
			Weight:       day.Weight,
			Reps:         input.Reps,
			Created:      s.now(),
		}
		return s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.store.WorkoutLogs.Upsert(ctx, entry); err != nil {
				return fmt.Errorf("upsert workout log: %w", err)
			}
			var err error
			_, outcome, err = UpsertPersonalRecord(ctx, s.store.PersonalRecords, profileID, day.ExerciseID, day.Weight, true)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CounterWorkoutLogs.WithLabelValues(kind.String()).Inc()
	s.metrics.CounterPersonalRecords.WithLabelValues(outcome.String()).Inc()
	return entry, nil
}

func (s *workoutLogService) History(ctx context.Context, profileID, exerciseID string) ([]HistoryPoint, error) {
	id, err := primitive.ObjectIDFromHex(exerciseID)
	if err != nil {
		return nil, ErrNotFound
	}

	points := []HistoryPoint{}
	for _, kind := range domain.ProgramKinds {
		logs, err := s.store.WorkoutLogs.ListByExercise(ctx, kind, profileID, id)
		if err != nil {
			return nil, fmt.Errorf("list %s logs: %w", kind, err)
		}
		for _, l := range logs {
			points = append(points, HistoryPoint{Created: l.Created, Weight: l.Weight})
		}
	}
	return points, nil
}
