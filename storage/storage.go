package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Storage stores public objects such as profile logos
type Storage interface {
	// Upload stores data under key
	Upload(ctx context.Context, key, contentType string, data io.Reader, size int64) error

	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL clients use to fetch key
	PublicURL(key string) string
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

var ErrInvalidKey = errors.New("invalid storage key")

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type StorageType

	LocalPath string // For local storage
	// PublicBaseURL prefixes object keys in returned URLs. Local storage
	// defaults to /uploads, S3 to the virtual-hosted bucket URL.
	PublicBaseURL string

	S3Bucket     string
	S3Region     string
	S3Endpoint   string // S3-compatible endpoint, empty for AWS
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath, cfg.PublicBaseURL)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// CleanKey rejects absolute keys and keys escaping the namespace root.
func CleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned != key || cleaned == "." || strings.HasPrefix(cleaned, "../") || cleaned == ".." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + key
}
