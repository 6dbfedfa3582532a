package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outcome tells what an upsert did to the stored record.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeUpdated
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// UpsertPersonalRecord creates the record for (profile, exercise) or
// overwrites its weight. With increaseOnly a weight that does not beat the
// stored one leaves the record untouched.
//
// A create that loses the race against a concurrent one fails with
// repository.ErrDuplicate. Inside a transaction nothing more can be read
// after that write error, so recovering is left to the caller, which reruns
// the whole operation through retryOnConflict.
func UpsertPersonalRecord(
	ctx context.Context,
	repo repository.PersonalRecordRepository,
	profileID string,
	exerciseID primitive.ObjectID,
	weight int,
	increaseOnly bool,
) (*domain.PersonalRecord, Outcome, error) {
	existing, err := repo.Find(ctx, profileID, exerciseID)
	if err != nil {
		return nil, 0, fmt.Errorf("find personal record: %w", err)
	}

	if existing == nil {
		record := &domain.PersonalRecord{ProfileID: profileID, ExerciseID: exerciseID, Weight: weight}
		if _, err := repo.Create(ctx, record); err != nil {
			return nil, 0, fmt.Errorf("create personal record: %w", err)
		}
		return record, OutcomeCreated, nil
	}

	if increaseOnly && existing.Weight >= weight {
		return existing, OutcomeUnchanged, nil
	}

	if err := repo.UpdateWeight(ctx, existing.ID, weight); err != nil {
		return nil, 0, fmt.Errorf("update personal record: %w", err)
	}
	existing.Weight = weight
	return existing, OutcomeUpdated, nil
}

type PersonalRecordService interface {
	ListPersonalRecords(ctx context.Context, profileID string) (*OrderedMap[int], error)
	PutPersonalRecord(ctx context.Context, profileID string, input PersonalRecordInput) (*domain.PersonalRecord, Outcome, error)
}

type personalRecordService struct {
	*deps
}

func NewPersonalRecordService(d Dependencies) PersonalRecordService {
	return &personalRecordService{deps: d.build()}
}

// PersonalRecordInput is the body of a direct personal record write.
type PersonalRecordInput struct {
	Exercise string
	Weight   int
}

// ListPersonalRecords maps exercise ids to the profile's record weights.
func (s *personalRecordService) ListPersonalRecords(ctx context.Context, profileID string) (*OrderedMap[int], error) {
	records, err := s.store.PersonalRecords.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	result := NewOrderedMap[int]()
	for _, r := range records {
		result.Set(r.ExerciseID.Hex(), r.Weight)
	}
	return result, nil
}

// PutPersonalRecord always overwrites: the direct endpoint may lower a
// record, unlike workout logging.
func (s *personalRecordService) PutPersonalRecord(ctx context.Context, profileID string, input PersonalRecordInput) (*domain.PersonalRecord, Outcome, error) {
	verr := &ValidationError{}
	exerciseID, err := s.resolveExercise(ctx, verr, "exercise", input.Exercise)
	if err != nil {
		return nil, 0, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, 0, err
	}

	var record *domain.PersonalRecord
	var outcome Outcome
	err = retryOnConflict(func() error {
		record, outcome, err = UpsertPersonalRecord(ctx, s.store.PersonalRecords, profileID, exerciseID, input.Weight, false)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	s.metrics.CounterPersonalRecords.WithLabelValues(outcome.String()).Inc()
	return record, outcome, nil
}

// resolveExercise looks up an exercise reference, recording a field error
// in verr when it is malformed or unknown.
func (s *deps) resolveExercise(ctx context.Context, verr *ValidationError, field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		verr.Addf(field, msgDoesNotExist, raw)
		return primitive.NilObjectID, nil
	}
	if _, err := s.store.Exercises.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verr.Addf(field, msgDoesNotExist, raw)
			return primitive.NilObjectID, nil
		}
		return primitive.NilObjectID, fmt.Errorf("get exercise: %w", err)
	}
	return id, nil
}

// retryOnConflict runs fn a second time when it lost a unique-key race. The
// rerun sees the row the other writer committed and updates it instead.
func retryOnConflict(fn func() error) error {
	err := fn()
	if errors.Is(err, repository.ErrDuplicate) {
		err = fn()
	}
	return err
}
