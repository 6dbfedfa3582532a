package storage

import (
	"alcyxob/fitness-tracker/internal/config"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage("bucket")

	exists, err := m.ObjectExists(ctx, "photos/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	uploadURL, err := m.GeneratePresignedUploadURL(ctx, "photos/a.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "mock://upload/bucket/photos%2Fa.jpg?expires=60", uploadURL)

	exists, err = m.ObjectExists(ctx, "photos/a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	downloadURL, err := m.GeneratePresignedDownloadURL(ctx, "photos/a.jpg", 0)
	require.NoError(t, err)
	assert.Equal(t, "mock://download/bucket/photos%2Fa.jpg?expires=900", downloadURL)

	require.NoError(t, m.DeleteObject(ctx, "photos/a.jpg"))
	require.NoError(t, m.DeleteObject(ctx, "photos/a.jpg"))
	exists, err = m.ObjectExists(ctx, "photos/a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNew_Mock(t *testing.T) {
	fs, err := New(context.Background(), config.S3Config{Mock: true})
	require.NoError(t, err)
	_, ok := fs.(*MemoryStorage)
	assert.True(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}
