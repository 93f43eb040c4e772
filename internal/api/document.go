package api

import (
	"net/http" // HTTP status codes

	"futsal_club/internal/domain"  // Importing domain models
	"futsal_club/internal/storage" // Local blob store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListDocumentsHandler returns archived documents, optionally filtered by
// category
func ListDocumentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.Document{})
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category) // Filter by category
		}
		var docs []domain.Document
		if err := query.Order("created_at desc").Limit(200).Find(&docs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs})
	}
}

// CreateDocumentHandler uploads a document file into the archive
func CreateDocumentHandler(db *gorm.DB, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}
		if file.Size > 20*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 20MB)"})
			return
		}
		url, err := store.SaveUpload(file, "documents")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
		doc := domain.Document{Title: title, Category: c.PostForm("category"), FileURL: url}
		if err := db.Create(&doc).Error; err != nil {
			_ = store.Remove(url) // Compensate: drop the blob saved above
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
			return
		}
		c.JSON(http.StatusCreated, doc)
	}
}

// DeleteDocumentHandler removes a document row and its blob
func DeleteDocumentHandler(db *gorm.DB, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc domain.Document
		if err := db.First(&doc, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		if err := db.Delete(&doc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
			return
		}
		_ = store.Remove(doc.FileURL) // Blob cleanup, best effort
		c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
	}
}
