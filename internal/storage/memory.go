package storage

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// MemoryStorage stands in for S3 during local development and tests. It
// hands out deterministic fake URLs and tracks which keys count as uploaded.
type MemoryStorage struct {
	bucket string

	mu      sync.RWMutex
	objects map[string]string // key -> content type
}

func NewMemoryStorage(bucket string) *MemoryStorage {
	if bucket == "" {
		bucket = "mock-bucket"
	}
	return &MemoryStorage{
		bucket:  bucket,
		objects: map[string]string{},
	}
}

// GeneratePresignedUploadURL marks the object as uploaded right away; there
// is no client to perform the PUT.
func (m *MemoryStorage) GeneratePresignedUploadURL(_ context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	m.Put(objectKey, contentType)
	return m.url("upload", objectKey, expires), nil
}

func (m *MemoryStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	return m.url("download", objectKey, expires), nil
}

func (m *MemoryStorage) ObjectExists(_ context.Context, objectKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[objectKey]
	return ok, nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.Remove(objectKey)
	return nil
}

// Put registers an object as present.
func (m *MemoryStorage) Put(objectKey, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = contentType
}

// Remove drops an object as if it vanished from the bucket.
func (m *MemoryStorage) Remove(objectKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
}

func (m *MemoryStorage) url(op, objectKey string, expires time.Duration) string {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	return fmt.Sprintf("mock://%s/%s/%s?expires=%d", op, m.bucket, url.PathEscape(objectKey), int(expires.Seconds()))
}
