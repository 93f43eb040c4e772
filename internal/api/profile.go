package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Activity log formatting
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"futsal_club/internal/domain"  // Importing domain models
	"futsal_club/internal/storage" // Local blob store
	"futsal_club/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ListPlayersHandler returns the player roster ordered by name
func ListPlayersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.User
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKeyRoster, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"players": cached, "cached": true})
			return
		}
		var players []domain.User
		if err := db.Where("role = ?", domain.RoleUser).Order("full_name asc").Find(&players).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch players"})
			return
		}
		// Cache the roster for future requests
		_ = utils.SetCache(ctx, rdb, cacheKeyRoster, players, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"players": players, "cached": false})
	}
}

// MeHandler returns the authenticated user's own profile
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateMeRequest is the profile self-edit payload. Scoring fields are not
// here: players can never mutate goals, attitude, attendance or score.
type UpdateMeRequest struct {
	FullName     string `json:"full_name"`
	Program      string `json:"program"`
	Position     string `json:"position"`
	JerseyNumber *int   `json:"jersey_number"`
	Phone        string `json:"phone"`
}

// UpdateMeHandler lets a player edit their own contact and roster fields
func UpdateMeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateMeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Apply only the provided fields
		updates := map[string]any{}
		if req.FullName != "" {
			updates["full_name"] = req.FullName
		}
		if req.Program != "" {
			updates["program"] = req.Program
		}
		if req.Position != "" {
			updates["position"] = req.Position
		}
		if req.JerseyNumber != nil {
			updates["jersey_number"] = *req.JerseyNumber
		}
		if req.Phone != "" {
			updates["phone"] = req.Phone
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		// Roster listing may now be stale
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyRoster)
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}

// UpdateScoreRequest sets a player's score-contributing fields. The stored
// score itself is never accepted from the client; it is recomputed.
type UpdateScoreRequest struct {
	Goals           *int `json:"goals"`
	AttitudeScore   *int `json:"attitude_score"`
	AttendanceCount *int `json:"attendance_count"`
}

// UpdateScoreHandler lets an admin edit a player's scoring inputs. The
// derived score is recomputed server-side and an activity log row records
// the edit.
func UpdateScoreHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateScoreRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Goals == nil && req.AttitudeScore == nil && req.AttendanceCount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
			return
		}
		var user domain.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		// Apply the provided inputs, then derive the score from the result
		if req.Goals != nil {
			user.Goals = *req.Goals
		}
		if req.AttitudeScore != nil {
			user.AttitudeScore = *req.AttitudeScore
		}
		if req.AttendanceCount != nil {
			user.AttendanceCount = *req.AttendanceCount
		}
		user.RecomputeScore()
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&user).
				Select("goals", "attitude_score", "attendance_count", "score").
				Updates(map[string]any{
					"goals":            user.Goals,
					"attitude_score":   user.AttitudeScore,
					"attendance_count": user.AttendanceCount,
					"score":            user.Score,
				}).Error; err != nil {
				return err
			}
			// Audit row for the admin edit
			activity := domain.ActivityLog{
				AdminID:      adminID,
				Action:       fmt.Sprintf("updated score fields of player %d", user.ID),
				TargetUserID: user.ID,
			}
			return tx.Create(&activity).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"admin_id":  adminID,     // Editing admin
				"player_id": user.ID,     // Edited player
				"error":     err.Error(), // Error message
			}).Error("Score update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Score update failed"})
			return
		}
		// Log successful score edit
		logrus.WithFields(logrus.Fields{
			"admin_id":  adminID,    // Editing admin
			"player_id": user.ID,    // Edited player
			"score":     user.Score, // Recomputed score
		}).Info("Score updated")
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyRoster)
		c.JSON(http.StatusOK, gin.H{
			"goals":            user.Goals,
			"attitude_score":   user.AttitudeScore,
			"attendance_count": user.AttendanceCount,
			"score":            user.Score,
		})
	}
}

// AvatarHandler uploads the authenticated user's avatar image. A thumbnail
// is generated and becomes the stored avatar path.
func AvatarHandler(db *gorm.DB, rdb *redis.Client, store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		file, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar image is required"})
			return
		}
		if file.Size > 5*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar too large (max 5MB)"})
			return
		}
		url, err := store.SaveUpload(file, "avatars")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
			return
		}
		// Thumbnail the upload; fall back to the original on failure
		avatarURL := url
		if thumb, err := store.Thumbnail(url, 256); err == nil {
			avatarURL = thumb
		}
		if err := db.Model(&domain.User{}).Where("id = ?", userID).Update("avatar_url", avatarURL).Error; err != nil {
			// Compensate: the row was not updated, drop the blob
			_ = store.Remove(url)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, cacheKeyRoster)
		c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
	}
}
