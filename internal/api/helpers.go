package api

import (
	"fmt"     // Key formatting
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// Cache keys shared between read handlers and the write handlers that
// invalidate them
const (
	cacheKeySummary = "treasury:summary" // Approved-only ledger totals
	cacheKeyRoster  = "players:roster"   // Player roster listing
	cacheKeyNews    = "news:list"        // News listing
)

// duesGridKey builds the cache key of one reporting period's dues grid
func duesGridKey(month, year int) string {
	return fmt.Sprintf("dues:grid:month=%d:year=%d", month, year)
}

// currentUserID returns the authenticated user id set by the JWT middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// pageParams reads page/page_size query params with the same defaults and
// bounds on every paginated endpoint
func pageParams(c *gin.Context) (page, pageSize, offset int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size if valid
		}
	}
	return page, pageSize, (page - 1) * pageSize
}
