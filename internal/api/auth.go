package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"futsal_club/internal/domain" // Importing domain models
	"futsal_club/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the sign-up payload for a new player account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`  // Username must be provided
	Password string `json:"password" binding:"required"`  // Password must be provided
	FullName string `json:"full_name" binding:"required"` // Roster name must be provided
	NIM      string `json:"nim" binding:"required"`       // Student id must be provided
	Program  string `json:"program"`                      // Study program, optional
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
	Role  string `json:"role"`  // Role of the authenticated user
}

// isValidUsername checks if the username contains only lowercase letters, digits and underscores
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[a-z0-9_]+$`, username)
	return matched
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64
}

// RegisterHandler creates a player account with role user
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.ToLower(strings.TrimSpace(req.Username))
		// Validate username and password
		if !isValidUsername(username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be lowercase letters, digits or underscore"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username: username,
			Password: string(hash),
			Role:     domain.RoleUser,
			FullName: req.FullName,
			NIM:      req.NIM,
			Program:  req.Program,
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Creation fails on duplicate username
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: user.Role})
	}
}
