package storage

import (
	"alcyxob/fitness-tracker/internal/config"
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mock_storage.go -package=storage

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// ObjectExists reports whether the object has been uploaded.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// DeleteObject removes an object from the storage provider. Deleting a
	// missing object is not an error.
	DeleteObject(ctx context.Context, objectKey string) error
}

// New picks the backend configured in cfg.
func New(ctx context.Context, cfg config.S3Config) (FileStorage, error) {
	if cfg.Mock {
		return NewMemoryStorage(cfg.BucketName), nil
	}
	return NewS3Storage(ctx, cfg)
}
