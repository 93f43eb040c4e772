package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"futsal_club/internal/domain" // Importing domain models
	"futsal_club/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewsRequest is the create/update payload for an announcement
type NewsRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// ListNewsHandler returns announcements, newest first
func ListNewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached []domain.News
		found, err := utils.GetCache(ctx, rdb, cacheKeyNews, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"news": cached, "cached": true})
			return
		}
		var news []domain.News
		if err := db.Order("created_at desc").Limit(100).Find(&news).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKeyNews, news, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"news": news, "cached": false})
	}
}

// GetNewsHandler returns one announcement
func GetNewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.News
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CreateNewsHandler creates an announcement
func CreateNewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		item := domain.News{Title: req.Title, Content: req.Content, ImageURL: req.ImageURL}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyNews)
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateNewsHandler updates an announcement
func UpdateNewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.News
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		item.Title = req.Title
		item.Content = req.Content
		item.ImageURL = req.ImageURL
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyNews)
		c.JSON(http.StatusOK, item)
	}
}

// DeleteNewsHandler removes an announcement
func DeleteNewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&domain.News{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyNews)
		c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
	}
}
