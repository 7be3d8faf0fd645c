package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	key, err := CleanKey("/user-1/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "user-1/logo.png", key)

	for _, bad := range []string{"", "/", "../etc/passwd", "user-1/../user-2/logo.png", "user-1//logo.png", "."} {
		_, err := CleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Upload(ctx, "u1/a.png", "image/png", strings.NewReader("png"), 3))

	data, err := os.ReadFile(filepath.Join(dir, "u1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "/uploads/u1/a.png", s.PublicURL("u1/a.png"))

	require.NoError(t, s.Delete(ctx, "u1/a.png"))
	_, err = os.Stat(filepath.Join(dir, "u1", "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, "u1/missing.png"))
}

func TestS3BaseURL(t *testing.T) {
	assert.Equal(t, "https://logos.s3.eu-west-3.amazonaws.com",
		s3BaseURL(StorageConfig{S3Bucket: "logos"}, "eu-west-3"))
	assert.Equal(t, "http://minio:9000/logos",
		s3BaseURL(StorageConfig{S3Bucket: "logos", S3Endpoint: "http://minio:9000/"}, "us-east-1"))
	assert.Equal(t, "https://cdn.example.com",
		s3BaseURL(StorageConfig{S3Bucket: "logos", PublicBaseURL: "https://cdn.example.com"}, "us-east-1"))
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(context.Background(), StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(context.Background(), StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)
}
