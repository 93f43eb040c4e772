package api

import (
	"encoding/json" // Team id list encoding
	"net/http"      // HTTP status codes
	"time"          // Match date parsing

	"futsal_club/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ScheduleRequest is the create/update payload for a match
type ScheduleRequest struct {
	Opponent     string `json:"opponent" binding:"required"`
	MatchDate    string `json:"match_date" binding:"required"` // RFC3339
	Venue        string `json:"venue"`
	MatchType    string `json:"match_type"`
	Status       string `json:"status"`
	PlayerTeam   []uint `json:"player_team"`   // Selected player user ids
	OfficialTeam []uint `json:"official_team"` // Selected official user ids
	CoachID      *uint  `json:"coach_id"`
}

// toModel converts the request into a MatchSchedule row, encoding the team
// lists as JSON text
func (r ScheduleRequest) toModel() (domain.MatchSchedule, error) {
	matchDate, err := time.Parse(time.RFC3339, r.MatchDate)
	if err != nil {
		return domain.MatchSchedule{}, err
	}
	players, _ := json.Marshal(r.PlayerTeam)
	officials, _ := json.Marshal(r.OfficialTeam)
	status := r.Status
	if status == "" {
		status = "upcoming"
	}
	return domain.MatchSchedule{
		Opponent:     r.Opponent,
		MatchDate:    matchDate,
		Venue:        r.Venue,
		MatchType:    r.MatchType,
		Status:       status,
		PlayerTeam:   string(players),
		OfficialTeam: string(officials),
		CoachID:      r.CoachID,
	}, nil
}

// ListSchedulesHandler returns matches ordered by date
func ListSchedulesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.MatchSchedule{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var schedules []domain.MatchSchedule
		if err := query.Order("match_date asc").Limit(200).Find(&schedules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"schedules": schedules})
	}
}

// CreateScheduleHandler creates a match entry
func CreateScheduleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		schedule, err := req.toModel()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match_date, expected RFC3339"})
			return
		}
		if err := db.Create(&schedule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
			return
		}
		c.JSON(http.StatusCreated, schedule)
	}
}

// UpdateScheduleHandler replaces a match entry
func UpdateScheduleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var existing domain.MatchSchedule
		if err := db.First(&existing, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
			return
		}
		var req ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		schedule, err := req.toModel()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match_date, expected RFC3339"})
			return
		}
		schedule.ID = existing.ID
		schedule.CreatedAt = existing.CreatedAt
		if err := db.Save(&schedule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		c.JSON(http.StatusOK, schedule)
	}
}

// DeleteScheduleHandler removes a match entry
func DeleteScheduleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&domain.MatchSchedule{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
	}
}
