package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// allowedImageTypes maps accepted extensions to their content type
var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	if !IsAllowedImage(fileHeader.Filename) {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only .png, .jpg, .jpeg and .webp files are allowed",
		}
	}

	return nil
}

// IsAllowedImage reports whether filename has an accepted image extension
func IsAllowedImage(filename string) bool {
	_, ok := allowedImageTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ImageContentType returns the content type for an image file name, or
// application/octet-stream for anything not accepted by ValidateImageFile.
func ImageContentType(filename string) string {
	if ct, ok := allowedImageTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// NewImageKey generates a collision-free file name that keeps the original extension
func NewImageKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

// GetImageURL returns the URL path for accessing a locally stored image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", filename)
}
