package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"futsal_club/internal/api"        // Custom package for API handlers
	"futsal_club/internal/config"     // Custom package for configuration
	"futsal_club/internal/middleware" // Custom package for middleware
	"futsal_club/internal/storage"    // Local blob store for uploads

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup the local blob store for proofs, avatars, gallery and documents
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		logrus.Fatalf("failed to init upload storage: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Uploaded files are served straight from the blob store
	r.Static("/uploads", cfg.UploadDir)

	// Public routes
	r.POST("/register", api.RegisterHandler(db))                // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret))       // Login endpoint
	r.GET("/news", api.ListNewsHandler(db, redisClient))        // Announcements list
	r.GET("/news/:id", api.GetNewsHandler(db))                  // Single announcement

	// Member routes (protected by JWT)
	authGroup := r.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/me", api.MeHandler(db))                                    // Own profile
	authGroup.PUT("/me", api.UpdateMeHandler(db, redisClient))                 // Edit own profile
	authGroup.POST("/me/avatar", api.AvatarHandler(db, redisClient, store))    // Avatar upload
	authGroup.GET("/players", api.ListPlayersHandler(db, redisClient))         // Roster listing
	authGroup.POST("/attendance/scan", api.ScanHandler(db, redisClient))       // QR scan check-in
	authGroup.GET("/attendance", api.ListMyAttendanceHandler(db))              // Own attendance logs
	authGroup.POST("/treasury/submit", api.SubmitTreasuryHandler(db, store))   // Dues payment submission
	authGroup.GET("/treasury", api.ListTreasuryHandler(db))                    // Approved ledger
	authGroup.GET("/treasury/summary", api.TreasurySummaryHandler(db, redisClient)) // Totals and balance
	authGroup.GET("/schedules", api.ListSchedulesHandler(db))                  // Match schedule
	authGroup.GET("/gallery", api.ListGalleryHandler(db))                      // Photo gallery
	authGroup.GET("/documents", api.ListDocumentsHandler(db))                  // Document archive
	authGroup.GET("/notifications", api.ListNotificationsHandler(db))          // Notification feed

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/attendance/qr", api.IssueQRHandler())                                 // Issue attendance token
	adminGroup.GET("/attendance/qr.png", api.QRImageHandler())                             // Rendered QR code
	adminGroup.GET("/attendance", api.ListAttendanceHandler(db))                           // All attendance logs
	adminGroup.GET("/treasury/pending", api.ListPendingHandler(db))                        // Pending approval queue
	adminGroup.POST("/treasury/:id/approve", api.ApproveHandler(db, redisClient))          // Approve a submission
	adminGroup.DELETE("/treasury/:id", api.DeleteTreasuryHandler(db, redisClient, store))  // Reject/delete
	adminGroup.POST("/treasury", api.ManualEntryHandler(db, redisClient))                  // Manual ledger entry
	adminGroup.GET("/dues", api.DuesGridHandler(db, redisClient))                          // Dues reconciliation grid
	adminGroup.PUT("/players/:id/score", api.UpdateScoreHandler(db, redisClient))          // Score field edit
	adminGroup.POST("/news", api.CreateNewsHandler(db, redisClient))                       // Create announcement
	adminGroup.PUT("/news/:id", api.UpdateNewsHandler(db, redisClient))                    // Update announcement
	adminGroup.DELETE("/news/:id", api.DeleteNewsHandler(db, redisClient))                 // Delete announcement
	adminGroup.POST("/schedules", api.CreateScheduleHandler(db))                           // Create match
	adminGroup.PUT("/schedules/:id", api.UpdateScheduleHandler(db))                        // Update match
	adminGroup.DELETE("/schedules/:id", api.DeleteScheduleHandler(db))                     // Delete match
	adminGroup.POST("/gallery", api.CreateGalleryHandler(db, store))                       // Upload photo
	adminGroup.DELETE("/gallery/:id", api.DeleteGalleryHandler(db, store))                 // Delete photo
	adminGroup.POST("/documents", api.CreateDocumentHandler(db, store))                    // Upload document
	adminGroup.DELETE("/documents/:id", api.DeleteDocumentHandler(db, store))              // Delete document
	adminGroup.POST("/notifications", api.CreateNotificationHandler(db))                   // Send notification

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
