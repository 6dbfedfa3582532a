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

type exerciseRepository struct{ db *DB }

func (r *exerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var (
		exercise domain.Exercise
		ok       bool
	)
	r.db.read(ctx, func(s *state) { exercise, ok = s.exercises[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	r.db.read(ctx, func(s *state) {
		for _, exercise := range s.exercises {
			exercises = append(exercises, exercise)
		}
	})
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

func (r *exerciseRepository) UpsertByName(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.Name == "" {
		return errors.New("exercise requires a name")
	}
	return r.db.write(ctx, func(s *state) error {
		exercise.ID = primitive.NewObjectID()
		for id, stored := range s.exercises {
			if stored.Name == exercise.Name {
				exercise.ID = id
				break
			}
		}
		s.exercises[exercise.ID] = *exercise
		return nil
	})
}

type mediaRepository struct{ db *DB }

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error) {
	if !media.Kind.Valid() || media.ObjectKey == "" || media.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("media requires a kind, an exercise and an object key")
	}
	if media.Visibility == domain.MediaUploaded && media.ProfileID == "" {
		return primitive.NilObjectID, errors.New("uploaded media requires a profile")
	}
	err := r.db.write(ctx, func(s *state) error {
		for _, stored := range s.media {
			if stored.ObjectKey == media.ObjectKey {
				return repository.ErrDuplicate
			}
		}
		media.ID = primitive.NewObjectID()
		media.CreatedAt = time.Now().UTC()
		s.media[media.ID] = *media
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return media.ID, nil
}

func (r *mediaRepository) GetByID(ctx context.Context, kind domain.MediaKind, id primitive.ObjectID) (*domain.Media, error) {
	var (
		media domain.Media
		ok    bool
	)
	r.db.read(ctx, func(s *state) { media, ok = s.media[id] })
	if !ok || media.Kind != kind {
		return nil, repository.ErrNotFound
	}
	return &media, nil
}

func (r *mediaRepository) List(ctx context.Context, kind domain.MediaKind, visibility domain.MediaVisibility, profileID string) ([]domain.Media, error) {
	media := []domain.Media{}
	r.db.read(ctx, func(s *state) {
		for _, m := range s.media {
			if m.Kind != kind || m.Visibility != visibility {
				continue
			}
			if visibility == domain.MediaUploaded && m.ProfileID != profileID {
				continue
			}
			media = append(media, m)
		}
	})
	sort.Slice(media, func(i, j int) bool { return lessID(media[i].ID, media[j].ID) })
	return media, nil
}

func (r *mediaRepository) FindPublicByKey(ctx context.Context, objectKey string) (*domain.Media, error) {
	var found *domain.Media
	r.db.read(ctx, func(s *state) {
		for _, m := range s.media {
			if m.ObjectKey == objectKey && m.Visibility == domain.MediaPublic {
				found = &m
				return
			}
		}
	})
	return found, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.media[id]; !ok {
			return repository.ErrNotFound
		}
		delete(s.media, id)
		return nil
	})
}

func (r *mediaRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for id, m := range s.media {
			if m.Visibility == domain.MediaUploaded && m.ProfileID == profileID {
				delete(s.media, id)
			}
		}
		return nil
	})
}

type foodLogRepository struct{ db *DB }

func (r *foodLogRepository) Create(ctx context.Context, foodLog *domain.FoodLog) (primitive.ObjectID, error) {
	if foodLog.ProfileID == "" {
		return primitive.NilObjectID, errors.New("food log requires a profile")
	}
	err := r.db.write(ctx, func(s *state) error {
		foodLog.ID = primitive.NewObjectID()
		s.foodLogs[foodLog.ID] = *foodLog
		return nil
	})
	return foodLog.ID, err
}

func (r *foodLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodLog, error) {
	var (
		foodLog domain.FoodLog
		ok      bool
	)
	r.db.read(ctx, func(s *state) { foodLog, ok = s.foodLogs[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &foodLog, nil
}

func (r *foodLogRepository) ListByProfile(ctx context.Context, profileID string) ([]domain.FoodLog, error) {
	logs := []domain.FoodLog{}
	r.db.read(ctx, func(s *state) {
		for _, foodLog := range s.foodLogs {
			if foodLog.ProfileID == profileID {
				logs = append(logs, foodLog)
			}
		}
	})
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].Created.Equal(logs[j].Created) {
			return logs[i].Created.Before(logs[j].Created)
		}
		return lessID(logs[i].ID, logs[j].ID)
	})
	return logs, nil
}

func (r *foodLogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.foodLogs[id]; !ok {
			return repository.ErrNotFound
		}
		delete(s.foodLogs, id)
		return nil
	})
}

func (r *foodLogRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.write(ctx, func(s *state) error {
		for id, foodLog := range s.foodLogs {
			if foodLog.ProfileID == profileID {
				delete(s.foodLogs, id)
			}
		}
		return nil
	})
}
