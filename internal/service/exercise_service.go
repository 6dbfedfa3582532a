package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseView is a catalog entry with its media resolved. A missing or
// dangling photo or video is nil.
type ExerciseView struct {
	domain.Exercise
	Photo *ResolvedMedia
	Video *ResolvedMedia
}

// ExerciseService is the read-only exercise catalog.
type ExerciseService interface {
	ListExercises(ctx context.Context) ([]ExerciseView, error)
	GetExercise(ctx context.Context, id string) (*ExerciseView, error)
}

type exerciseService struct {
	*deps
}

func NewExerciseService(d Dependencies) ExerciseService {
	return &exerciseService{deps: d.build()}
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]ExerciseView, error) {
	exercises, err := s.store.Exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	views := make([]ExerciseView, 0, len(exercises))
	for i := range exercises {
		view, err := s.view(ctx, &exercises[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, rawID string) (*ExerciseView, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrNotFound
	}
	exercise, err := s.store.Exercises.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.view(ctx, exercise)
}

func (s *exerciseService) view(ctx context.Context, e *domain.Exercise) (*ExerciseView, error) {
	photo, err := s.mediaRef(ctx, domain.MediaPhoto, e.PhotoID)
	if err != nil {
		return nil, err
	}
	video, err := s.mediaRef(ctx, domain.MediaVideo, e.VideoID)
	if err != nil {
		return nil, err
	}
	return &ExerciseView{Exercise: *e, Photo: photo, Video: video}, nil
}

// mediaRef resolves an optional public media reference; a dangling one
// renders as null.
func (s *exerciseService) mediaRef(ctx context.Context, kind domain.MediaKind, id *primitive.ObjectID) (*ResolvedMedia, error) {
	if id == nil {
		return nil, nil
	}
	m, err := s.store.Media.GetByID(ctx, kind, *id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exercise %s: %w", kind, err)
	}
	item, err := s.resolve(ctx, m)
	if errors.Is(err, errObjectMissing) {
		return nil, nil
	}
	return item, err
}
