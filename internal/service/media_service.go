package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaInput is the body of an upload request.
type MediaInput struct {
	Exercise    string
	Title       string
	ContentType string
}

// ResolvedMedia is a media record with a presigned URL for its object: a
// download URL on reads, an upload URL right after creation.
type ResolvedMedia struct {
	domain.Media
	URL string
}

type MediaService interface {
	// ListMedia returns the requested kinds keyed by kind name. Records
	// whose object vanished from storage are deleted and left out.
	ListMedia(ctx context.Context, profileID string, kinds []domain.MediaKind, visibilities []domain.MediaVisibility) (*OrderedMap[[]ResolvedMedia], error)
	GetMedia(ctx context.Context, profileID string, kind domain.MediaKind, public bool, id string) (*ResolvedMedia, error)
	CreateMedia(ctx context.Context, profileID string, kind domain.MediaKind, input MediaInput) (*ResolvedMedia, error)
	DeleteMedia(ctx context.Context, profileID string, kind domain.MediaKind, id string) error
}

type mediaService struct {
	*deps
}

func NewMediaService(d Dependencies) MediaService {
	return &mediaService{deps: d.build()}
}

// errObjectMissing marks a media record whose storage object is gone.
var errObjectMissing = errors.New("media object missing from storage")

// resolve presigns a download URL for m. When the object is missing the
// record is deleted and errObjectMissing returned.
func (s *deps) resolve(ctx context.Context, m *domain.Media) (*ResolvedMedia, error) {
	exists, err := s.files.ObjectExists(ctx, m.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("check media object: %w", err)
	}
	if !exists {
		log.WithFields(log.Fields{"media": m.ID.Hex(), "key": m.ObjectKey}).Warn("media object missing, deleting record")
		if err := s.store.Media.Delete(ctx, m.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("delete stale media: %w", err)
		}
		s.metrics.CounterMediaSelfHealed.Inc()
		return nil, errObjectMissing
	}

	url, err := s.files.GeneratePresignedDownloadURL(ctx, m.ObjectKey, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &ResolvedMedia{Media: *m, URL: url}, nil
}

func (s *mediaService) ListMedia(ctx context.Context, profileID string, kinds []domain.MediaKind, visibilities []domain.MediaVisibility) (*OrderedMap[[]ResolvedMedia], error) {
	result := NewOrderedMap[[]ResolvedMedia]()
	for _, kind := range kinds {
		items := []ResolvedMedia{}
		for _, visibility := range visibilities {
			media, err := s.store.Media.List(ctx, kind, visibility, profileID)
			if err != nil {
				return nil, fmt.Errorf("list %s %s media: %w", visibility, kind, err)
			}
			for i := range media {
				item, err := s.resolve(ctx, &media[i])
				if errors.Is(err, errObjectMissing) {
					continue
				}
				if err != nil {
					return nil, err
				}
				items = append(items, *item)
			}
		}
		result.Set(kind.String(), items)
	}
	return result, nil
}

func (s *mediaService) media(ctx context.Context, profileID string, kind domain.MediaKind, public bool, rawID string) (*domain.Media, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrNotFound
	}
	fetch := func(ctx context.Context) (*domain.Media, error) {
		return s.store.Media.GetByID(ctx, kind, id)
	}
	if public {
		m, err := fetch(ctx)
		if err != nil {
			return nil, notFound(err)
		}
		if m.Visibility != domain.MediaPublic {
			return nil, ErrNotFound
		}
		return m, nil
	}
	m, err := GetOwned(ctx, fetch, profileID)
	if err != nil {
		return nil, err
	}
	if m.Visibility != domain.MediaUploaded {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *mediaService) GetMedia(ctx context.Context, profileID string, kind domain.MediaKind, public bool, id string) (*ResolvedMedia, error) {
	m, err := s.media(ctx, profileID, kind, public, id)
	if err != nil {
		return nil, err
	}
	item, err := s.resolve(ctx, m)
	if errors.Is(err, errObjectMissing) {
		return nil, ErrNotFound
	}
	return item, err
}

// objectKey builds a unique storage key for an upload.
func objectKey(profileID string, kind domain.MediaKind) string {
	return path.Join("uploads", profileID, kind.String()+"s", uuid.New().String())
}

func (s *mediaService) CreateMedia(ctx context.Context, profileID string, kind domain.MediaKind, input MediaInput) (*ResolvedMedia, error) {
	verr := &ValidationError{}
	exerciseID, err := s.resolveExercise(ctx, verr, "exercise", input.Exercise)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	m := &domain.Media{
		Kind:        kind,
		Visibility:  domain.MediaUploaded,
		ProfileID:   profileID,
		ExerciseID:  exerciseID,
		Title:       input.Title,
		ObjectKey:   objectKey(profileID, kind),
		ContentType: input.ContentType,
	}

	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, m.ObjectKey, m.ContentType, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	if _, err := s.store.Media.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}

	return &ResolvedMedia{Media: *m, URL: uploadURL}, nil
}

// DeleteMedia removes the stored object first, then the record.
func (s *mediaService) DeleteMedia(ctx context.Context, profileID string, kind domain.MediaKind, id string) error {
	m, err := s.media(ctx, profileID, kind, false, id)
	if err != nil {
		return err
	}
	if err := s.files.DeleteObject(ctx, m.ObjectKey); err != nil {
		return fmt.Errorf("delete media object: %w", err)
	}
	if err := s.store.Media.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("delete media: %w", notFound(err))
	}
	return nil
}
