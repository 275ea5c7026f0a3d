package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Timestamp formatting

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/store"  // Repository layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SaveStressRequest is the payload for a stress questionnaire submission
type SaveStressRequest struct {
	MemberID       uint   `json:"member_id" binding:"required"` // Assessed member
	Total          int    `json:"total"`                        // Questionnaire total
	Level          string `json:"level"`                        // Derived label
	Emotional      int    `json:"emotional"`                    // Sub-score
	Control        int    `json:"control"`                      // Sub-score
	Resilience     int    `json:"resilience"`                   // Sub-score
	Cognitive      int    `json:"cognitive"`                    // Sub-score
	Anger          int    `json:"anger"`                        // Sub-score
	InsightPresent string `json:"insight_present"`              // Free-text insight
	InsightPast    string `json:"insight_past"`                 // Free-text insight
}

// SaveStressHandler upserts the member's stress assessment. Each submission
// replaces the previous one; there is no history.
func SaveStressHandler(members store.MemberStore, stress store.StressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SaveStressRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id required"})
			return
		}
		// Ownership check: the member must belong to the caller
		if _, err := members.Find(userID, req.MemberID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		assessment := domain.StressAssessment{
			UserID:         userID,
			MemberID:       req.MemberID,
			TotalScore:     req.Total,
			StressLevel:    req.Level,
			Emotional:      req.Emotional,
			Control:        req.Control,
			Resilience:     req.Resilience,
			Cognitive:      req.Cognitive,
			Anger:          req.Anger,
			InsightPresent: req.InsightPresent,
			InsightPast:    req.InsightPast,
		}
		if err := stress.Upsert(&assessment); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"member_id": req.MemberID,
				"error":     err.Error(),
			}).Error("Failed to save stress assessment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// LatestStressHandler returns the member's live stress assessment, or an
// empty object when none has been submitted yet.
func LatestStressHandler(stress store.StressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		assessment, err := stress.Latest(userID, memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if assessment == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_score":  assessment.TotalScore,
			"stress_level": assessment.StressLevel,
			"emotional":    assessment.Emotional,
			"control":      assessment.Control,
			"resilience":   assessment.Resilience,
			"cognitive":    assessment.Cognitive,
			"anger":        assessment.Anger,
			"insight_past": assessment.InsightPast,
			"measured_at":  assessment.UpdatedAt.Format(time.RFC3339),
		})
	}
}
