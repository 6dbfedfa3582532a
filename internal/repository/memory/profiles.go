package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileRepository struct{ db *DB }

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		return errors.New("profile requires an identity id")
	}
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.profiles[profile.ID]; ok {
			return repository.ErrDuplicate
		}
		now := time.Now().UTC()
		profile.CreatedAt = now
		profile.UpdatedAt = now
		s.profiles[profile.ID] = *profile
		return nil
	})
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var (
		profile domain.Profile
		ok      bool
	)
	r.db.read(ctx, func(s *state) { profile, ok = s.profiles[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.write(ctx, func(s *state) error {
		stored, ok := s.profiles[profile.ID]
		if !ok {
			return repository.ErrNotFound
		}
		profile.CreatedAt = stored.CreatedAt
		profile.UpdatedAt = time.Now().UTC()
		s.profiles[profile.ID] = *profile
		return nil
	})
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.profiles[id]; !ok {
			return repository.ErrNotFound
		}
		delete(s.profiles, id)
		return nil
	})
}

func (r *profileRepository) ClearCustomProgram(ctx context.Context, programID primitive.ObjectID) error {
	return r.db.write(ctx, func(s *state) error {
		for id, profile := range s.profiles {
			if profile.CurrentCustomWorkoutProgram != nil && *profile.CurrentCustomWorkoutProgram == programID {
				profile.CurrentCustomWorkoutProgram = nil
				profile.UpdatedAt = time.Now().UTC()
				s.profiles[id] = profile
			}
		}
		return nil
	})
}

type programRepository struct{ db *DB }

func (r *programRepository) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if !program.Kind.Valid() || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires a kind and a name")
	}
	if program.Kind == domain.ProgramCustom && program.ProfileID == "" {
		return primitive.NilObjectID, errors.New("custom program requires a profile")
	}
	err := r.db.write(ctx, func(s *state) error {
		program.ID = primitive.NewObjectID()
		now := time.Now().UTC()
		program.CreatedAt = now
		program.UpdatedAt = now
		s.programs[program.Kind][program.ID] = *program
		return nil
	})
	return program.ID, err
}

func (r *programRepository) GetByID(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	var (
		program domain.WorkoutProgram
		ok      bool
	)
	r.db.read(ctx, func(s *state) { program, ok = s.programs[kind][id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &program, nil
}

func (r *programRepository) FindByName(ctx context.Context, kind domain.ProgramKind, profileID, name string) (*domain.WorkoutProgram, error) {
	var found *domain.WorkoutProgram
	r.db.read(ctx, func(s *state) {
		for _, program := range s.programs[kind] {
			if program.Name == name && (kind == domain.ProgramDefault || program.ProfileID == profileID) {
				found = &program
				return
			}
		}
	})
	return found, nil
}

func (r *programRepository) List(ctx context.Context, kind domain.ProgramKind, profileID string) ([]domain.WorkoutProgram, error) {
	programs := []domain.WorkoutProgram{}
	r.db.read(ctx, func(s *state) {
		for _, program := range s.programs[kind] {
			if kind == domain.ProgramDefault || program.ProfileID == profileID {
				programs = append(programs, program)
			}
		}
	})
	sort.Slice(programs, func(i, j int) bool { return lessID(programs[i].ID, programs[j].ID) })
	return programs, nil
}

func (r *programRepository) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	return r.db.write(ctx, func(s *state) error {
		stored, ok := s.programs[program.Kind][program.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.Name = program.Name
		stored.Length = program.Length
		stored.Description = program.Description
		stored.UpdatedAt = time.Now().UTC()
		program.UpdatedAt = stored.UpdatedAt
		s.programs[program.Kind][program.ID] = stored
		return nil
	})
}

func (r *programRepository) Delete(ctx context.Context, kind domain.ProgramKind, id primitive.ObjectID) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.programs[kind][id]; !ok {
			return repository.ErrNotFound
		}
		delete(s.programs[kind], id)
		return nil
	})
}

func (r *programRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for id, program := range s.programs[domain.ProgramCustom] {
			if program.ProfileID == profileID {
				delete(s.programs[domain.ProgramCustom], id)
			}
		}
		return nil
	})
}
