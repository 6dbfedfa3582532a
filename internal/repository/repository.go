package repository

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Transactor runs fn atomically. Repositories called with the ctx handed to fn
// take part in the transaction; if fn returns an error nothing it wrote is
// kept.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Conventions: Get* methods return ErrNotFound for a missing record. Find*
// methods are optional lookups and return (nil, nil) when nothing matches.

// ProfileRepository stores profiles keyed by their external identity id.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error // ErrDuplicate if the id is taken
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id string) error
	// ClearCustomProgram unsets the current custom program of every profile
	// pointing at programID.
	ClearCustomProgram(ctx context.Context, programID primitive.ObjectID) error
}

// ProgramRepository stores default and custom programs in parallel collections.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutProgram, error)
	FindByName(ctx context.Context, kind domain.ProgramKind, profileID, name string) (*domain.WorkoutProgram, error)
	// List returns every default program when kind is default, or the custom
	// programs of profileID.
	List(ctx context.Context, kind domain.ProgramKind, profileID string) ([]domain.WorkoutProgram, error)
	Update(ctx context.Context, program *domain.WorkoutProgram) error
	Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error
	DeleteByProfile(ctx context.Context, profileID string) error
}

// WorkoutDayRepository stores program rows. (program, week, day, exercise) is
// unique.
type WorkoutDayRepository interface {
	GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutDay, error)
	FindByKey(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID, key domain.DayKey) (*domain.WorkoutDay, error)
	// ListByProgram returns rows ordered by (week, day) and insertion order
	// within a day.
	ListByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]domain.WorkoutDay, error)
	// Upsert inserts the row or overwrites the targets of the row with the same
	// key, setting day.ID either way.
	Upsert(ctx context.Context, day *domain.WorkoutDay) error
	Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error
	// DeleteByProgram removes all rows of a program and returns their ids.
	DeleteByProgram(ctx context.Context, kind domain.ProgramKind, programID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByProfile(ctx context.Context, profileID string) error
}

// WorkoutLogRepository stores at most one log per (kind, profile, day).
type WorkoutLogRepository interface {
	Find(ctx context.Context, kind domain.ProgramKind, profileID string, dayID primitive.ObjectID) (*domain.WorkoutLog, error)
	Upsert(ctx context.Context, log *domain.WorkoutLog) error
	ListByDays(ctx context.Context, kind domain.ProgramKind, profileID string, dayIDs []primitive.ObjectID) ([]domain.WorkoutLog, error)
	// ListByExercise returns logs ordered by creation time.
	ListByExercise(ctx context.Context, kind domain.ProgramKind, profileID string, exerciseID primitive.ObjectID) ([]domain.WorkoutLog, error)
	// DetachDays clears the day reference of logs pointing at dayIDs.
	DetachDays(ctx context.Context, kind domain.ProgramKind, dayIDs []primitive.ObjectID) error
	DeleteByProfile(ctx context.Context, profileID string) error
}

// PersonalRecordRepository stores at most one record per (profile, exercise).
type PersonalRecordRepository interface {
	Find(ctx context.Context, profileID string, exerciseID primitive.ObjectID) (*domain.PersonalRecord, error)
	Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error)
	UpdateWeight(ctx context.Context, id primitive.ObjectID, weight int) error
	ListByProfile(ctx context.Context, profileID string) ([]domain.PersonalRecord, error)
	DeleteByProfile(ctx context.Context, profileID string) error
}

// ExerciseRepository is the read-mostly exercise catalog.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	// UpsertByName creates the exercise or updates the one with the same
	// name, setting exercise.ID.
	UpsertByName(ctx context.Context, exercise *domain.Exercise) error
}

// MediaRepository stores photo/video metadata; bytes live in object storage.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error)
	GetByID(ctx context.Context, kind domain.MediaKind, id primitive.ObjectID) (*domain.Media, error)
	// List returns public media when visibility is public, otherwise the
	// uploaded media of profileID.
	List(ctx context.Context, kind domain.MediaKind, visibility domain.MediaVisibility, profileID string) ([]domain.Media, error)
	FindPublicByKey(ctx context.Context, objectKey string) (*domain.Media, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProfile(ctx context.Context, profileID string) error
}

// FoodLogRepository stores food logs.
type FoodLogRepository interface {
	Create(ctx context.Context, log *domain.FoodLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodLog, error)
	// ListByProfile returns logs ordered by creation time.
	ListByProfile(ctx context.Context, profileID string) ([]domain.FoodLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProfile(ctx context.Context, profileID string) error
}

// Store bundles every repository with the transactor that spans them.
type Store struct {
	Tx              Transactor
	Profiles        ProfileRepository
	Programs        ProgramRepository
	WorkoutDays     WorkoutDayRepository
	WorkoutLogs     WorkoutLogRepository
	PersonalRecords PersonalRecordRepository
	Exercises       ExerciseRepository
	Media           MediaRepository
	FoodLogs        FoodLogRepository
}
