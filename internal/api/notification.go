package api

import (
	"net/http" // HTTP status codes

	"futsal_club/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListNotificationsHandler returns broadcast notifications plus the
// authenticated user's direct ones, newest first
func ListNotificationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var notifs []domain.Notification
		if err := db.Where("is_broadcast = ? OR user_id = ?", true, userID).
			Order("created_at desc").Limit(100).Find(&notifs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifs})
	}
}

// NotificationRequest is the admin-side send payload
type NotificationRequest struct {
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	IsBroadcast bool   `json:"is_broadcast"`
	UserID      *uint  `json:"user_id"` // Required when not broadcast
}

// CreateNotificationHandler inserts a notification row. Delivery is whoever
// reads the list next; nothing is pushed.
func CreateNotificationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !req.IsBroadcast && req.UserID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required for a direct notification"})
			return
		}
		notif := domain.Notification{
			Title:       req.Title,
			Message:     req.Message,
			Type:        req.Type,
			IsBroadcast: req.IsBroadcast,
			UserID:      req.UserID,
		}
		if err := db.Create(&notif).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
			return
		}
		c.JSON(http.StatusCreated, notif)
	}
}
