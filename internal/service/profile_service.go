package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

const (
	fieldCurrentProgram       = "current_workout_program"
	fieldCurrentCustomProgram = "current_custom_workout_program"
)

// ProfileInput is the body of profile creation.
type ProfileInput struct {
	Goal                        string
	Experience                  string
	Weight                      int
	Height                      int
	CurrentWorkoutProgram       string
	CurrentCustomWorkoutProgram string
}

// Selection is a tri-state program reference of a patch: absent, explicitly
// cleared (Present with empty ID), or set.
type Selection struct {
	Present bool
	ID      string
}

// ProfilePatch holds the fields of a partial profile update; nil pointers
// are left untouched.
type ProfilePatch struct {
	Goal                        *string
	Experience                  *string
	Weight                      *int
	Height                      *int
	CurrentWorkoutProgram       Selection
	CurrentCustomWorkoutProgram Selection
}

type ProfileService interface {
	GetProfile(ctx context.Context, profileID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, profileID string, input ProfileInput) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, patch ProfilePatch) (*domain.Profile, error)
	// DeleteProfile removes the profile and everything it owns.
	DeleteProfile(ctx context.Context, profileID string) error
}

type profileService struct {
	*deps
}

func NewProfileService(d Dependencies) ProfileService {
	return &profileService{deps: d.build()}
}

// GetProfile returns ErrNoProfile when the identity has none yet.
func (s *profileService) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	profile, err := s.store.Profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) CreateProfile(ctx context.Context, profileID string, input ProfileInput) (*domain.Profile, error) {
	alreadyInUse := NewValidationError("id", fmt.Sprintf("%q already in use.", profileID))
	if _, err := s.store.Profiles.GetByID(ctx, profileID); err == nil {
		return nil, alreadyInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	verr := &ValidationError{}
	if input.CurrentCustomWorkoutProgram != "" {
		verr.Add(fieldCurrentCustomProgram, "Can not select on profile creation.")
	}

	profile := &domain.Profile{
		ID:         profileID,
		Goal:       input.Goal,
		Experience: input.Experience,
		Weight:     input.Weight,
		Height:     input.Height,
	}
	if input.CurrentWorkoutProgram != "" {
		id, err := s.resolveProgram(ctx, verr, domain.ProgramDefault, fieldCurrentProgram, input.CurrentWorkoutProgram, profileID)
		if err != nil {
			return nil, err
		}
		profile.CurrentWorkoutProgram = id
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.Profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, alreadyInUse
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	log.WithField("profile", profileID).Info("profile created")
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profileID string, patch ProfilePatch) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if patch.Goal != nil {
		profile.Goal = *patch.Goal
	}
	if patch.Experience != nil {
		profile.Experience = *patch.Experience
	}
	if patch.Weight != nil {
		profile.Weight = *patch.Weight
	}
	if patch.Height != nil {
		profile.Height = *patch.Height
	}

	if patch.CurrentWorkoutProgram.Present {
		id, err := s.resolveProgram(ctx, verr, domain.ProgramDefault, fieldCurrentProgram, patch.CurrentWorkoutProgram.ID, profileID)
		if err != nil {
			return nil, err
		}
		profile.CurrentWorkoutProgram = id
	}
	if patch.CurrentCustomWorkoutProgram.Present {
		id, err := s.resolveProgram(ctx, verr, domain.ProgramCustom, fieldCurrentCustomProgram, patch.CurrentCustomWorkoutProgram.ID, profileID)
		if err != nil {
			return nil, err
		}
		profile.CurrentCustomWorkoutProgram = id
	}

	if verr.Empty() {
		if err := profile.CheckSelection(); err != nil {
			verr.Add(fieldCurrentProgram, err.Error())
			verr.Add(fieldCurrentCustomProgram, err.Error())
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.Profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// resolveProgram turns a program reference into an id. An empty raw value
// clears the selection. Custom programs must belong to profileID.
func (s *profileService) resolveProgram(ctx context.Context, verr *ValidationError, kind domain.ProgramKind, field, raw, profileID string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		verr.Addf(field, msgDoesNotExist, raw)
		return nil, nil
	}
	program, err := s.store.Programs.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			verr.Addf(field, msgDoesNotExist, raw)
			return nil, nil
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	if kind == domain.ProgramCustom && program.ProfileID != profileID {
		verr.Addf(field, msgDoesNotExist, raw)
		return nil, nil
	}
	return &id, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, profileID string) error {
	if _, err := s.GetProfile(ctx, profileID); err != nil {
		return err
	}

	var objectKeys []string
	err := s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		objectKeys = objectKeys[:0]
		for _, kind := range domain.MediaKinds {
			media, err := s.store.Media.List(ctx, kind, domain.MediaUploaded, profileID)
			if err != nil {
				return fmt.Errorf("list %s media: %w", kind, err)
			}
			for _, m := range media {
				objectKeys = append(objectKeys, m.ObjectKey)
			}
		}

		steps := []struct {
			name string
			fn   func(context.Context, string) error
		}{
			{"workout logs", s.store.WorkoutLogs.DeleteByProfile},
			{"personal records", s.store.PersonalRecords.DeleteByProfile},
			{"food logs", s.store.FoodLogs.DeleteByProfile},
			{"media", s.store.Media.DeleteByProfile},
			{"custom days", s.store.WorkoutDays.DeleteByProfile},
			{"custom programs", s.store.Programs.DeleteByProfile},
			{"profile", s.store.Profiles.Delete},
		}
		for _, step := range steps {
			if err := step.fn(ctx, profileID); err != nil {
				return fmt.Errorf("delete %s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// objects go after commit; a failure here only leaves orphans behind
	var cleanupErr error
	for _, key := range objectKeys {
		cleanupErr = multierr.Append(cleanupErr, s.files.DeleteObject(ctx, key))
	}
	if cleanupErr != nil {
		log.WithField("profile", profileID).Warnf("delete profile media objects: %s", cleanupErr)
	}

	log.WithField("profile", profileID).Info("profile deleted")
	return nil
}
