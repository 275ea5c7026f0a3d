package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/store"  // Repository layer
	"health_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Usernames that can never be registered
var reservedUsernames = map[string]bool{
	"admin":     true,
	"support":   true,
	"root":      true,
	"system":    true,
	"moderator": true,
	"help":      true,
	"contact":   true,
}

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Valid email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
	Role     string `json:"role"`                           // Optional: user (default) or coach
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15
}

// RegisterHandler creates a user account together with its "self" family
// member. Coaches start in pending verification and stay locked out of the
// coach surface until an admin approves them.
func RegisterHandler(db *gorm.DB, members store.MemberStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.ToLower(strings.TrimSpace(req.Username))
		email := strings.ToLower(strings.TrimSpace(req.Email))
		// Validate username and password
		if !isValidUsername(username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphabetic only"})
			return
		}
		if reservedUsernames[username] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This username is reserved"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		// Default role is user; anything but coach is rejected
		role := req.Role
		if role == "" {
			role = "user"
		}
		if role != "user" && role != "coach" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		// Coaches require admin approval before using the coach surface
		verificationStatus := "approved"
		if role == "coach" {
			verificationStatus = "pending"
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username:           username,
			Email:              email,
			PasswordHash:       string(hash),
			Role:               role,
			VerificationStatus: verificationStatus,
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Duplicate username or email
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered"})
			return
		}
		// Every account owns a "self" member that carries its own vitals
		if _, err := members.EnsureSelf(user.ID, username); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Failed to create self member")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize profile"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token. The "self"
// member is auto-selected on first login so member-scoped endpoints have a
// target without an explicit pick.
func LoginHandler(db *gorm.DB, members store.MemberStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Auto-select the "self" member if nothing is selected yet
		if user.SelectedMemberID == nil {
			if self, err := members.EnsureSelf(user.ID, user.Username); err == nil {
				user.SelectedMemberID = &self.MemberID
				if err := db.Model(&user).Update("selected_member_id", self.MemberID).Error; err != nil {
					logrus.WithFields(logrus.Fields{
						"user_id": user.ID,
						"error":   err.Error(),
					}).Warn("Failed to persist selected member")
				}
			}
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Username, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
