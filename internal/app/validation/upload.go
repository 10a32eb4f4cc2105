package validation

import (
	"errors"
	"strings"
)

// MaxUploadSize is the largest accepted document.
const MaxUploadSize int64 = 10 * 1024 * 1024

var (
	ErrFileTooLarge    = errors.New("File size exceeds 10MB limit")
	ErrInvalidFileType = errors.New("Invalid file type. Only PDF, JPEG, and PNG files are allowed.")
	ErrEmptyFile       = errors.New("No file provided")
)

var allowedUploadTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
}

// AllowedUploadTypes lists the accepted content types.
func AllowedUploadTypes() []string {
	return []string{"application/pdf", "image/jpeg", "image/png", "image/jpg"}
}

// ValidateUpload checks size and content type against the document rules.
// maxSize outside (0, MaxUploadSize] falls back to MaxUploadSize.
func ValidateUpload(size int64, contentType string, maxSize int64) error {
	if maxSize <= 0 || maxSize > MaxUploadSize {
		maxSize = MaxUploadSize
	}
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > maxSize {
		return ErrFileTooLarge
	}
	if _, ok := allowedUploadTypes[normalizeContentType(contentType)]; !ok {
		return ErrInvalidFileType
	}
	return nil
}

// UploadExtension returns the file extension stored for contentType.
func UploadExtension(contentType string) string {
	return allowedUploadTypes[normalizeContentType(contentType)]
}

func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
