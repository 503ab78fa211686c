package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/shahzadcollection/storefront-api/utils"
	"go.uber.org/zap"
)

// UploadedImage identifies a stored product image
type UploadedImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ImageService handles all image-related operations including upload, retrieval, and deletion
type ImageService interface {
	// UploadImage validates and stores an image file
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadedImage, error)

	// GetImageURL generates a URL for accessing an uploaded image
	GetImageURL(ctx context.Context, imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(ctx context.Context, imageKey string) error
}

// StorageImageService implements ImageService over an ObjectStorage
type StorageImageService struct {
	storage ObjectStorage
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with the given storage backend
func InitImageService(storage ObjectStorage) ImageService {
	imageServiceInstance = &StorageImageService{storage: storage}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates an image and stores it under a fresh key
func (s *StorageImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadedImage, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var fe *utils.FileUploadError
		if errors.As(err, &fe) {
			return nil, ValidationError(fe.Code, fe.Message, map[string]string{"file": fe.Message})
		}
		return nil, ValidationError("INVALID_FILE", err.Error(), nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, InternalError("UPLOAD_FAILED", fmt.Errorf("failed to open file: %w", err))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			zap.L().Warn("Failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	key := utils.NewImageKey(fileHeader.Filename)
	if err := s.storage.Put(ctx, key, file, utils.ImageContentType(fileHeader.Filename)); err != nil {
		return nil, InternalError("UPLOAD_FAILED", fmt.Errorf("failed to upload image: %w", err))
	}

	url, err := s.storage.URL(ctx, key)
	if err != nil {
		return nil, InternalError("UPLOAD_FAILED", fmt.Errorf("failed to generate image URL: %w", err))
	}

	zap.L().Info("Image uploaded", zap.String("key", key), zap.Int64("size", fileHeader.Size))
	return &UploadedImage{Key: key, URL: url}, nil
}

// GetImageURL generates a URL for accessing an image
func (s *StorageImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.storage.URL(ctx, imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// DeleteImage deletes an image from storage
func (s *StorageImageService) DeleteImage(ctx context.Context, imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.storage.Delete(ctx, imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
