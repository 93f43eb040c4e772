package api

import (
	"net/http" // HTTP status codes

	"futsal_club/internal/domain"  // Importing domain models
	"futsal_club/internal/storage" // Local blob store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListGalleryHandler returns gallery photos, newest first
func ListGalleryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var photos []domain.GalleryPhoto
		if err := db.Order("created_at desc").Limit(200).Find(&photos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gallery"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"photos": photos})
	}
}

// CreateGalleryHandler uploads a photo and stores it with a generated
// thumbnail
func CreateGalleryHandler(db *gorm.DB, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Photo is required"})
			return
		}
		if file.Size > 10*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Photo too large (max 10MB)"})
			return
		}
		url, err := store.SaveUpload(file, "gallery")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
			return
		}
		thumbURL := ""
		if thumb, err := store.Thumbnail(url, 400); err == nil {
			thumbURL = thumb
		}
		photo := domain.GalleryPhoto{Title: c.PostForm("title"), ImageURL: url, ThumbURL: thumbURL}
		if err := db.Create(&photo).Error; err != nil {
			// Compensate: drop the blobs saved above
			_ = store.Remove(url)
			if thumbURL != "" {
				_ = store.Remove(thumbURL)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
			return
		}
		c.JSON(http.StatusCreated, photo)
	}
}

// DeleteGalleryHandler removes a photo row and its blobs
func DeleteGalleryHandler(db *gorm.DB, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var photo domain.GalleryPhoto
		if err := db.First(&photo, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		if err := db.Delete(&photo).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
			return
		}
		_ = store.Remove(photo.ImageURL) // Blob cleanup, best effort
		if photo.ThumbURL != "" {
			_ = store.Remove(photo.ThumbURL)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
	}
}
