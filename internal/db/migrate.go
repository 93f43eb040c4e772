package db

import (
	"futsal_club/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds the
// initial admin account
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.AttendanceLog{},
		&domain.TreasuryTransaction{},
		&domain.WeeklyDue{},
		&domain.MatchSchedule{},
		&domain.News{},
		&domain.GalleryPhoto{},
		&domain.Document{},
		&domain.Notification{},
		&domain.ActivityLog{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	Seed(db)
	logrus.Info("Migration completed.") // Log successful migration
}

// Seed creates the initial admin account when no admin exists yet. The
// password is a well-known default and must be changed after first login.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return // An admin already exists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash seed password: %v", err)
	}
	admin := domain.User{
		Username: "admin",
		Password: string(hash),
		Role:     domain.RoleAdmin,
		FullName: "Club Administrator",
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}
	logrus.Info("Seeded admin user: username=admin, password=admin123")
}
