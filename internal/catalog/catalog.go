// Package catalog loads the shared exercise catalog and default workout
// programs from a YAML file and writes them to a store.
package catalog

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// MediaFile is a public photo or video already present in the bucket.
type MediaFile struct {
	Title string `yaml:"title" validate:"required,max=64"`
	Key   string `yaml:"key" validate:"required"`
}

type Exercise struct {
	Name          string     `yaml:"name" validate:"required"`
	PrimaryMuscle string     `yaml:"primary_muscle"`
	Photo         *MediaFile `yaml:"photo"`
	Video         *MediaFile `yaml:"video"`
}

type Day struct {
	Week     int    `yaml:"week" validate:"min=1"`
	Day      int    `yaml:"day" validate:"min=1,max=7"`
	Exercise string `yaml:"exercise" validate:"required"`
	Sets     int    `yaml:"sets" validate:"min=1"`
	Reps     int    `yaml:"reps" validate:"min=1"`
	Weight   int    `yaml:"weight" validate:"min=0"`
}

type Program struct {
	Name        string `yaml:"name" validate:"required,max=32"`
	Length      int    `yaml:"length" validate:"min=1"`
	Description string `yaml:"description" validate:"max=256"`
	Days        []Day  `yaml:"days" validate:"dive"`
}

// Catalog is the parsed seed file.
type Catalog struct {
	Exercises []Exercise `yaml:"exercises" validate:"dive"`
	Programs  []Program  `yaml:"programs" validate:"dive"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog and checks that every program day names a listed
// exercise.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	names := make(map[string]bool, len(c.Exercises))
	for _, e := range c.Exercises {
		if names[e.Name] {
			return nil, fmt.Errorf("invalid catalog: exercise %q listed twice", e.Name)
		}
		names[e.Name] = true
	}
	for _, p := range c.Programs {
		for _, d := range p.Days {
			if !names[d.Exercise] {
				return nil, fmt.Errorf("invalid catalog: program %q uses unknown exercise %q", p.Name, d.Exercise)
			}
		}
	}
	return &c, nil
}

// ObjectKeys lists the storage keys of every public media file.
func (c *Catalog) ObjectKeys() []string {
	keys := []string{}
	for _, e := range c.Exercises {
		for _, m := range []*MediaFile{e.Photo, e.Video} {
			if m != nil {
				keys = append(keys, m.Key)
			}
		}
	}
	return keys
}

// Summary counts what a seed run wrote.
type Summary struct {
	Exercises int
	Media     int
	Programs  int
	Days      int
}

// Seed upserts the catalog in one transaction. Exercises and programs are
// matched by name and media by object key, so running it twice changes
// nothing.
func Seed(ctx context.Context, store repository.Store, c *Catalog) (Summary, error) {
	var summary Summary
	err := store.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		summary = Summary{}
		exerciseIDs, err := seedExercises(ctx, store, c.Exercises, &summary)
		if err != nil {
			return err
		}
		return seedPrograms(ctx, store, c.Programs, exerciseIDs, &summary)
	})
	if err != nil {
		return Summary{}, err
	}
	log.WithFields(log.Fields{
		"exercises": summary.Exercises,
		"media":     summary.Media,
		"programs":  summary.Programs,
		"days":      summary.Days,
	}).Info("catalog seeded")
	return summary, nil
}

func seedExercises(ctx context.Context, store repository.Store, exercises []Exercise, summary *Summary) (map[string]domain.Exercise, error) {
	ids := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		exercise := domain.Exercise{Name: e.Name, PrimaryMuscle: e.PrimaryMuscle}
		if err := store.Exercises.UpsertByName(ctx, &exercise); err != nil {
			return nil, fmt.Errorf("upsert exercise %q: %w", e.Name, err)
		}

		photo, err := seedMedia(ctx, store, domain.MediaPhoto, exercise, e.Photo, summary)
		if err != nil {
			return nil, err
		}
		video, err := seedMedia(ctx, store, domain.MediaVideo, exercise, e.Video, summary)
		if err != nil {
			return nil, err
		}
		if photo != nil || video != nil {
			exercise.PhotoID = photo
			exercise.VideoID = video
			if err := store.Exercises.UpsertByName(ctx, &exercise); err != nil {
				return nil, fmt.Errorf("attach media to %q: %w", e.Name, err)
			}
		}
		ids[e.Name] = exercise
		summary.Exercises++
	}
	return ids, nil
}

func seedMedia(ctx context.Context, store repository.Store, kind domain.MediaKind, exercise domain.Exercise, file *MediaFile, summary *Summary) (*primitive.ObjectID, error) {
	if file == nil {
		return nil, nil
	}
	existing, err := store.Media.FindPublicByKey(ctx, file.Key)
	if err != nil {
		return nil, fmt.Errorf("find media %q: %w", file.Key, err)
	}
	if existing != nil {
		return &existing.ID, nil
	}
	media := &domain.Media{
		Kind:       kind,
		Visibility: domain.MediaPublic,
		ExerciseID: exercise.ID,
		Title:      file.Title,
		ObjectKey:  file.Key,
	}
	id, err := store.Media.Create(ctx, media)
	if err != nil {
		return nil, fmt.Errorf("create media %q: %w", file.Key, err)
	}
	summary.Media++
	return &id, nil
}

func seedPrograms(ctx context.Context, store repository.Store, programs []Program, exercises map[string]domain.Exercise, summary *Summary) error {
	for _, p := range programs {
		program, err := store.Programs.FindByName(ctx, domain.ProgramDefault, "", p.Name)
		if err != nil {
			return fmt.Errorf("find program %q: %w", p.Name, err)
		}
		if program == nil {
			program = &domain.WorkoutProgram{Kind: domain.ProgramDefault, Name: p.Name, Length: p.Length, Description: p.Description}
			if _, err := store.Programs.Create(ctx, program); err != nil {
				return fmt.Errorf("create program %q: %w", p.Name, err)
			}
		} else {
			program.Length = p.Length
			program.Description = p.Description
			if err := store.Programs.Update(ctx, program); err != nil {
				return fmt.Errorf("update program %q: %w", p.Name, err)
			}
		}

		for _, d := range p.Days {
			day := &domain.WorkoutDay{
				Kind:       domain.ProgramDefault,
				ProgramID:  program.ID,
				Week:       d.Week,
				Day:        d.Day,
				ExerciseID: exercises[d.Exercise].ID,
				Sets:       d.Sets,
				Reps:       d.Reps,
				Weight:     d.Weight,
			}
			if err := store.WorkoutDays.Upsert(ctx, day); err != nil {
				return fmt.Errorf("upsert %q week %d day %d: %w", p.Name, d.Week, d.Day, err)
			}
			summary.Days++
		}
		summary.Programs++
	}
	return nil
}
