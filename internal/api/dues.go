package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Default reporting period

	"futsal_club/internal/treasury" // Dues grid projection
	"futsal_club/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// DuesGridHandler returns the players x weeks reconciliation matrix for one
// reporting period. The grid is a pure read-side projection of WeeklyDue rows
// and is cached per (month, year).
func DuesGridHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		month := int(now.Month()) // Default to the current period
		year := now.Year()
		if m := c.Query("month"); m != "" {
			if v, err := strconv.Atoi(m); err == nil && v >= 1 && v <= 12 {
				month = v // Set month if valid
			}
		}
		if y := c.Query("year"); y != "" {
			if v, err := strconv.Atoi(y); err == nil && v > 0 {
				year = v // Set year if valid
			}
		}
		ctx := context.Background() // Use background context for Redis
		cacheKey := duesGridKey(month, year)
		var cached []treasury.PlayerDues
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "players": cached, "cached": true})
			return
		}
		grid, err := treasury.DuesGrid(db, month, year)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dues grid"})
			return
		}
		// Cache the grid for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, grid, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "players": grid, "cached": false})
	}
}
