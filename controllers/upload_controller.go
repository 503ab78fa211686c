package controllers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/shahzadcollection/storefront-api/utils"
)

// UploadImage handles POST /api/v1/admin/uploads - stores a product image from the multipart "file" field
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.RespondError(c, services.ValidationError("MISSING_FILE", "An image file is required",
			map[string]string{"file": "is required"}))
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		middleware.RespondError(c, services.InternalError("STORAGE_UNAVAILABLE", errors.New("image service not initialized")))
		return
	}

	uploaded, err := imageService.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, uploaded)
}

// GetUploadedImage handles GET /api/v1/uploads/:filename - serves images kept in local storage
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	// Security: Prevent directory traversal attacks
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		middleware.RespondError(c, services.ValidationError("INVALID_FILENAME", "Invalid filename", nil))
		return
	}

	if !utils.IsAllowedImage(filename) {
		middleware.RespondError(c, services.ValidationError("INVALID_FILE_TYPE",
			"Only .png, .jpg, .jpeg and .webp files are supported", nil))
		return
	}

	filePath, err := services.NewLocalStorage(config.GetConfig().UploadDir).Path(filename)
	if err != nil {
		middleware.RespondError(c, services.ValidationError("INVALID_FILENAME", "Invalid filename", nil))
		return
	}

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		middleware.RespondError(c, services.NotFoundError("FILE_NOT_FOUND", "Image not found"))
		return
	}

	c.Header("Content-Type", utils.ImageContentType(filename))
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
