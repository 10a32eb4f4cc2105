package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/ikkim/permit-backend/pkg/util"
)

const uploadTimeout = 30 * time.Second

var (
	ErrFilePathRequired = errors.New("file path is required")
	ErrUploadFailed     = errors.New("upload failed")
	ErrSignedURLFailed  = errors.New("failed to create signed URL")
)

// FileStorage is the object store holding application documents.
type FileStorage interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	ObjectURL(key string) string
}

// UploadedFile describes a stored document. Path is what applications reference.
type UploadedFile struct {
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
}

// FileUpload is one incoming multipart file.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

type UploadService interface {
	Upload(file FileUpload) (*UploadedFile, error)
	UploadTest(file FileUpload) (*UploadedFile, error)
	SignedURL(filePath string) (string, error)
}

type uploadService struct {
	storage      FileStorage
	maxSize      int64
	signedExpiry time.Duration
	now          func() time.Time
}

func NewUploadService(storage FileStorage, maxSize int64, signedExpiry time.Duration) UploadService {
	return &uploadService{
		storage:      storage,
		maxSize:      maxSize,
		signedExpiry: signedExpiry,
		now:          time.Now,
	}
}

// ApplicationKey names an uploaded document: applications/<unix ms>-<random>.<ext>.
// The extension comes from the original file name, falling back to the content type.
func ApplicationKey(now time.Time, fileName, contentType string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = validation.UploadExtension(contentType)
	}
	return fmt.Sprintf("applications/%d-%s.%s", now.UnixMilli(), util.RandomToken(11), ext)
}

// TestKey names a diagnostic upload: test/<unix ms>-<file name>.
func TestKey(now time.Time, fileName string) string {
	return fmt.Sprintf("test/%d-%s", now.UnixMilli(), path.Base(fileName))
}

func (s *uploadService) Upload(file FileUpload) (*UploadedFile, error) {
	if err := validation.ValidateUpload(file.Size, file.ContentType, s.maxSize); err != nil {
		return nil, err
	}
	key := ApplicationKey(s.now(), file.Name, file.ContentType)
	if err := s.put(key, file); err != nil {
		return nil, err
	}
	return &UploadedFile{FileName: key, Path: key}, nil
}

func (s *uploadService) UploadTest(file FileUpload) (*UploadedFile, error) {
	if err := validation.ValidateUpload(file.Size, file.ContentType, s.maxSize); err != nil {
		return nil, err
	}
	key := TestKey(s.now(), file.Name)
	if err := s.put(key, file); err != nil {
		return nil, err
	}
	return &UploadedFile{FileName: key, Path: key, URL: s.storage.ObjectURL(key)}, nil
}

func (s *uploadService) put(key string, file FileUpload) error {
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	if err := s.storage.PutObject(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		logger.Error("Failed to store uploaded file", err, map[string]interface{}{
			"key":          key,
			"size":         file.Size,
			"content_type": file.ContentType,
		})
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	logger.Info("File uploaded", map[string]interface{}{
		"key":  key,
		"size": file.Size,
	})
	return nil
}

func (s *uploadService) SignedURL(filePath string) (string, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return "", ErrFilePathRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	url, err := s.storage.PresignGetURL(ctx, filePath, s.signedExpiry)
	if err != nil {
		logger.Error("Failed to create signed URL", err, map[string]interface{}{
			"path": filePath,
		})
		return "", fmt.Errorf("%w: %v", ErrSignedURLFailed, err)
	}
	return url, nil
}
