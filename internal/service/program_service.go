package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramInput is the body of program creation.
type ProgramInput struct {
	Name        string
	Length      int
	Description string
	Days        []DayInput
}

// ProgramPatch holds the fields of a partial program update. Days is applied
// on top of the existing rows.
type ProgramPatch struct {
	Name        *string
	Length      *int
	Description *string
	Days        []DayInput
}

// ProgramDetail is a program with its composed schedule.
type ProgramDetail struct {
	Program *domain.WorkoutProgram
	Days    *Schedule
}

type ProgramService interface {
	// ListPrograms returns the requested kinds keyed by kind name.
	ListPrograms(ctx context.Context, profileID string, kinds []domain.ProgramKind) (*OrderedMap[[]domain.WorkoutProgram], error)
	GetProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string) (*ProgramDetail, error)
	CreateProgram(ctx context.Context, profileID string, input ProgramInput) (*ProgramDetail, error)
	// CopyProgram clones a program and its rows into a new custom program
	// owned by profileID, then applies patch to the copy.
	CopyProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string, patch ProgramPatch) (*ProgramDetail, error)
	UpdateProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string, patch ProgramPatch) (*ProgramDetail, error)
	DeleteProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string) error
}

type programService struct {
	*deps
}

func NewProgramService(d Dependencies) ProgramService {
	return &programService{deps: d.build()}
}

func (s *programService) ListPrograms(ctx context.Context, profileID string, kinds []domain.ProgramKind) (*OrderedMap[[]domain.WorkoutProgram], error) {
	result := NewOrderedMap[[]domain.WorkoutProgram]()
	for _, kind := range kinds {
		programs, err := s.store.Programs.List(ctx, kind, profileID)
		if err != nil {
			return nil, fmt.Errorf("list %s programs: %w", kind, err)
		}
		result.Set(kind.String(), programs)
	}
	return result, nil
}

// program fetches a program visible to profileID: any default program, or a
// custom one the profile owns.
func (s *deps) program(ctx context.Context, profileID string, kind domain.ProgramKind, rawID string) (*domain.WorkoutProgram, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrNotFound
	}
	fetch := func(ctx context.Context) (*domain.WorkoutProgram, error) {
		return s.store.Programs.GetByID(ctx, kind, id)
	}
	if kind == domain.ProgramDefault {
		program, err := fetch(ctx)
		return program, notFound(err)
	}
	return GetOwned(ctx, fetch, profileID)
}

func (s *programService) GetProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string) (*ProgramDetail, error) {
	program, err := s.program(ctx, profileID, kind, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, program, profileID)
}

func (s *programService) detail(ctx context.Context, program *domain.WorkoutProgram, profileID string) (*ProgramDetail, error) {
	schedule, err := s.composeProgram(ctx, program, profileID)
	if err != nil {
		return nil, err
	}
	return &ProgramDetail{Program: program, Days: schedule}, nil
}

func (s *programService) CreateProgram(ctx context.Context, profileID string, input ProgramInput) (*ProgramDetail, error) {
	verr := &ValidationError{}
	changes, err := s.resolveDays(ctx, verr, input.Days)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	program := &domain.WorkoutProgram{
		Kind:        domain.ProgramCustom,
		ProfileID:   profileID,
		Name:        input.Name,
		Length:      input.Length,
		Description: input.Description,
	}
	err = s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.store.Programs.Create(ctx, program); err != nil {
			return fmt.Errorf("create program: %w", err)
		}
		return s.applyDays(ctx, program, changes)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"profile": profileID, "program": program.ID.Hex()}).Debug("custom program created")
	return s.detail(ctx, program, profileID)
}

func (s *programService) CopyProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string, patch ProgramPatch) (*ProgramDetail, error) {
	source, err := s.program(ctx, profileID, kind, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	changes, err := s.resolveDays(ctx, verr, patch.Days)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	program := &domain.WorkoutProgram{
		Kind:        domain.ProgramCustom,
		ProfileID:   profileID,
		Name:        source.Name,
		Length:      source.Length,
		Description: source.Description,
	}
	applyProgramPatch(program, patch)

	err = s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.store.WorkoutDays.ListByProgram(ctx, source.Kind, source.ID)
		if err != nil {
			return fmt.Errorf("list source days: %w", err)
		}
		if _, err := s.store.Programs.Create(ctx, program); err != nil {
			return fmt.Errorf("create program: %w", err)
		}
		copied := make([]dayChange, 0, len(rows)+len(changes))
		for _, row := range rows {
			copied = append(copied, dayChange{key: row.Key(), sets: row.Sets, reps: row.Reps, weight: row.Weight})
		}
		return s.applyDays(ctx, program, append(copied, changes...))
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, program, profileID)
}

func applyProgramPatch(program *domain.WorkoutProgram, patch ProgramPatch) {
	if patch.Name != nil {
		program.Name = *patch.Name
	}
	if patch.Length != nil {
		program.Length = *patch.Length
	}
	if patch.Description != nil {
		program.Description = *patch.Description
	}
}

func errDefaultReadOnly() error {
	return NewValidationError("detail", "Default workout programs are read-only.")
}

func (s *programService) UpdateProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string, patch ProgramPatch) (*ProgramDetail, error) {
	program, err := s.program(ctx, profileID, kind, id)
	if err != nil {
		return nil, err
	}
	if kind == domain.ProgramDefault {
		return nil, errDefaultReadOnly()
	}

	verr := &ValidationError{}
	changes, err := s.resolveDays(ctx, verr, patch.Days)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	applyProgramPatch(program, patch)
	err = s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.Programs.Update(ctx, program); err != nil {
			return fmt.Errorf("update program: %w", err)
		}
		return s.applyDays(ctx, program, changes)
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, program, profileID)
}

func (s *programService) DeleteProgram(ctx context.Context, profileID string, kind domain.ProgramKind, id string) error {
	program, err := s.program(ctx, profileID, kind, id)
	if err != nil {
		return err
	}
	if kind == domain.ProgramDefault {
		return errDefaultReadOnly()
	}

	return s.store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		dayIDs, err := s.store.WorkoutDays.DeleteByProgram(ctx, program.Kind, program.ID)
		if err != nil {
			return fmt.Errorf("delete days: %w", err)
		}
		if len(dayIDs) > 0 {
			if err := s.store.WorkoutLogs.DetachDays(ctx, program.Kind, dayIDs); err != nil {
				return fmt.Errorf("detach logs: %w", err)
			}
		}
		if err := s.store.Profiles.ClearCustomProgram(ctx, program.ID); err != nil {
			return fmt.Errorf("clear profile selection: %w", err)
		}
		if err := s.store.Programs.Delete(ctx, program.Kind, program.ID); err != nil {
			return fmt.Errorf("delete program: %w", err)
		}
		return nil
	})
}
