package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"nexusconnect-backend/models"
	"nexusconnect-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxLogoSize is 5 MiB
const DefaultMaxLogoSize int64 = 5 * 1024 * 1024

var allowedLogoTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// LogoService stores profile logos under a per-user namespace
type LogoService struct {
	store   storage.Storage
	maxSize int64
	log     *zap.Logger
}

// LogoServiceOption is a functional option for LogoService
type LogoServiceOption func(*LogoService)

// LogoWithStorage sets the object storage
func LogoWithStorage(store storage.Storage) LogoServiceOption {
	return func(s *LogoService) {
		s.store = store
	}
}

// LogoWithMaxSize overrides the upload size limit
func LogoWithMaxSize(n int64) LogoServiceOption {
	return func(s *LogoService) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// LogoWithLogger sets the logger
func LogoWithLogger(log *zap.Logger) LogoServiceOption {
	return func(s *LogoService) {
		s.log = log
	}
}

// NewLogoService creates a new logo service
func NewLogoService(opts ...LogoServiceOption) *LogoService {
	s := &LogoService{maxSize: DefaultMaxLogoSize, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSize is the largest accepted logo in bytes
func (s *LogoService) MaxSize() int64 {
	return s.maxSize
}

// LogoFile describes an uploaded file
type LogoFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Upload validates type and size before touching storage, then stores the
// file as {userID}/{random}.{ext}.
func (s *LogoService) Upload(ctx context.Context, userID uuid.UUID, file LogoFile) (*models.LogoUpload, error) {
	if s.store == nil {
		return nil, ErrServiceNotReady
	}
	if !allowedLogoTypes[file.ContentType] {
		return nil, ErrUnsupportedFile
	}
	if file.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	key := fmt.Sprintf("%s/%s.%s", userID, uuid.New(), logoExtension(file.Filename))
	if err := s.store.Upload(ctx, key, file.ContentType, file.Data, file.Size); err != nil {
		return nil, fmt.Errorf("Failed to upload logo: %w", err)
	}

	s.log.Info("logo uploaded", zap.String("user_id", userID.String()), zap.String("key", key))
	return &models.LogoUpload{
		URL:      s.store.PublicURL(key),
		Filename: key,
		Message:  "Logo uploaded successfully",
	}, nil
}

// Delete removes a logo the caller owns
func (s *LogoService) Delete(ctx context.Context, userID uuid.UUID, filename string) (*models.LogoDelete, error) {
	if s.store == nil {
		return nil, ErrServiceNotReady
	}

	key, err := storage.CleanKey(filename)
	if err != nil || !strings.HasPrefix(key, userID.String()+"/") {
		return nil, ErrForbidden
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("Failed to delete logo: %w", err)
	}
	return &models.LogoDelete{Filename: key, Message: "Logo deleted successfully"}, nil
}

// logoExtension keeps the filename extension when it is a plain
// alphanumeric token, and falls back to png.
func logoExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return "png"
	}
	ext := strings.ToLower(filename[i+1:])
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "png"
		}
	}
	return ext
}
