package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/erp/backoffice/internal/infrastructure/config"
)

func TestNewS3ObjectStorageValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half a key pair returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(ctx, &config.StorageConfig{Bucket: "b", AccessKeyID: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, &config.StorageConfig{
			Bucket:          "print-forms",
			Endpoint:        "localhost:9000",
			AccessKeyID:     "minio",
			SecretAccessKey: "minio-secret",
			UsePathStyle:    true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "print-forms", s.GetBucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiration)
	})
}

func TestS3PresignDoesNotCallNetwork(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), &config.StorageConfig{
		Bucket:          "print-forms",
		Region:          "eu-central-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		UsePathStyle:    true,
		PresignExpiry:   5 * time.Minute,
	})
	require.NoError(t, err)

	url, expiresAt, err := s.GenerateDownloadURL(context.Background(), "Orders/o1/a.pdf", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/print-forms/Orders/o1/a.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 2*time.Second)

	_, _, err = s.GenerateDownloadURL(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrStorageKeyRequired)
	assert.ErrorIs(t, s.Upload(context.Background(), "", nil, ""), ErrStorageKeyRequired)
}

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	data := []byte("pdf")
	require.NoError(t, s.Upload(ctx, "k/1.pdf", data, "application/pdf"))
	data[0] = 'x'

	obj, ok := s.Get("k/1.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("pdf"), obj.Data, "upload keeps its own copy")
	assert.Equal(t, "application/pdf", obj.ContentType)

	url, _, err := s.GenerateDownloadURL(ctx, "k/1.pdf", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/download/k/1.pdf?expires="))

	assert.ErrorIs(t, s.Upload(ctx, "", nil, ""), ErrStorageKeyRequired)
}
