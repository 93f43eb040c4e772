package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel errors for transaction rollback
	"net/http" // HTTP status codes
	"net/url"  // Query escaping for the QR image link
	"time"     // Day-range computation

	"futsal_club/internal/domain" // Importing domain models
	"futsal_club/internal/qr"     // Attendance token issue/parse
	"futsal_club/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Rollback sentinels for the scan transaction
var (
	errDuplicateScan = errors.New("already checked in for this session today")
)

// IssueQRHandler issues a self-contained attendance token for a session
// label. Nothing is persisted at issue time; the token carries its own issue
// timestamp.
func IssueQRHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.Query("session") // Session label supplied by the admin
		if session == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session is required"})
			return
		}
		now := time.Now()
		token := qr.Issue(session, now) // Token = label|epochMillis
		c.JSON(http.StatusOK, gin.H{
			"session":    session,                             // Session label
			"token":      token,                               // Wire token for the QR payload
			"expires_at": now.Add(qr.TokenTTL).Unix(),         // Validity deadline
			"image_url":  "/admin/attendance/qr.png?session=" + url.QueryEscape(session), // Rendered QR
		})
	}
}

// QRImageHandler renders a freshly issued token for a session as a QR PNG
func QRImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.Query("session")
		if session == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session is required"})
			return
		}
		png, err := qr.ImagePNG(qr.Issue(session, time.Now()), 512)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png) // Raw PNG body
	}
}

// ScanRequest is the player-side scan payload
type ScanRequest struct {
	Token     string `json:"token" binding:"required"` // Scanned QR payload
	Signature string `json:"signature"`                // Optional signature data
}

// ScanHandler validates a scanned token and records attendance. On success
// one attendance row is inserted and the player's attendance count and score
// are updated in the same transaction.
func ScanHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ScanRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Parse the token; a bad shape or non-numeric timestamp is rejected
		token, err := qr.Parse(req.Token)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed token"})
			return
		}
		now := time.Now()
		// Reject tokens older than the validity window
		if err := token.Validate(now); err != nil {
			c.JSON(http.StatusGone, gin.H{"error": "Expired token"})
			return
		}
		// Today's calendar-day range in server local time
		y, m, d := now.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.Add(24 * time.Hour)

		var updated domain.User
		err = db.Transaction(func(tx *gorm.DB) error {
			// At most one log per (user, session, day)
			var count int64
			if err := tx.Model(&domain.AttendanceLog{}).
				Where("user_id = ? AND session_name = ? AND created_at >= ? AND created_at < ?",
					userID, token.Session, dayStart, dayEnd).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errDuplicateScan // Rollback, surface as conflict
			}
			// Insert the attendance row
			logRow := domain.AttendanceLog{UserID: userID, SessionName: token.Session, Signature: req.Signature}
			if err := tx.Create(&logRow).Error; err != nil {
				return err
			}
			// Bump the counter and recompute the derived score atomically with the insert
			if err := tx.First(&updated, userID).Error; err != nil {
				return err
			}
			updated.AttendanceCount++
			updated.RecomputeScore()
			return tx.Model(&updated).
				Select("attendance_count", "score").
				Updates(map[string]any{"attendance_count": updated.AttendanceCount, "score": updated.Score}).Error
		})
		// Handle transaction result
		if errors.Is(err, errDuplicateScan) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already checked in for this session today"})
			return
		}
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,        // Scanning player
				"session": token.Session, // Session label
				"error":   err.Error(),   // Error message
			}).Error("Attendance scan failed") // Log scan failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan failed"})
			return
		}
		// Log successful scan
		logrus.WithFields(logrus.Fields{
			"user_id":          userID,                  // Scanning player
			"session":          token.Session,           // Session label
			"attendance_count": updated.AttendanceCount, // New counter value
			"score":            updated.Score,           // Recomputed score
		}).Info("Attendance recorded")
		// Roster listing shows attendance counts and scores, drop its cache
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyRoster)
		c.JSON(http.StatusCreated, gin.H{
			"message":          "Attendance recorded",
			"session":          token.Session,
			"attendance_count": updated.AttendanceCount,
			"score":            updated.Score,
		})
	}
}

// ListMyAttendanceHandler returns the authenticated player's attendance logs
func ListMyAttendanceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var logs []domain.AttendanceLog
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"attendance": logs})
	}
}

// ListAttendanceHandler returns all attendance logs for admins, optionally
// filtered by session label
func ListAttendanceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize, offset := pageParams(c)
		query := db.Model(&domain.AttendanceLog{}) // Start building the query
		if session := c.Query("session"); session != "" {
			query = query.Where("session_name = ?", session) // Filter by session
		}
		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count attendance"})
			return
		}
		var logs []domain.AttendanceLog
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"attendance":  logs,       // Attendance rows
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total rows
			"total_pages": totalPages, // Total pages
		})
	}
}
