package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CoachAdminResponse represents a pending coach in the approval queue
type CoachAdminResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
	Status   string `json:"status"`   // Verification status
}

// PendingCoachesHandler returns all coaches awaiting approval. The queue is
// cached briefly and invalidated whenever a verdict lands.
func PendingCoachesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []CoachAdminResponse
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, utils.PendingCoachesCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"coaches": cached, "cached": true})
			return
		}
		var coaches []domain.User
		err = db.Where("role = ? AND verification_status = ?", "coach", "pending").
			Order("id ASC").
			Find(&coaches).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coaches"})
			return
		}
		// Map users to response format
		resp := make([]CoachAdminResponse, len(coaches))
		for i, coach := range coaches {
			resp[i] = CoachAdminResponse{
				ID:       coach.ID,
				Username: coach.Username,
				Email:    coach.Email,
				Status:   coach.VerificationStatus,
			}
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, utils.PendingCoachesCacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"coaches": resp, "cached": false})
	}
}

// setCoachStatus applies an approval verdict and invalidates the cached queue.
func setCoachStatus(db *gorm.DB, rdb *redis.Client, c *gin.Context, status string) {
	coachID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var coach domain.User
	if err := db.First(&coach, coachID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coach not found"})
		return
	}
	// Only coach accounts carry a verification state
	if coach.Role != "coach" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a coach"})
		return
	}
	if err := db.Model(&coach).Update("verification_status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	// Log the verdict
	logrus.WithFields(logrus.Fields{
		"coach_id": coachID,
		"status":   status,
	}).Info("Coach verification updated")
	// Invalidate the cached approval queue
	_ = utils.DeleteCache(context.Background(), rdb, utils.PendingCoachesCacheKey)
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// ApproveCoachHandler marks a pending coach as approved.
func ApproveCoachHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCoachStatus(db, rdb, c, "approved")
	}
}

// RejectCoachHandler marks a pending coach as rejected.
func RejectCoachHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		setCoachStatus(db, rdb, c, "rejected")
	}
}
