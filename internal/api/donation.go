package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"health_system/internal/eligibility" // Donation eligibility engine
	"health_system/internal/store"       // Repository layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// EligibilityHandler runs the donation eligibility gate chain for one member.
// A failed gate is a 200 with eligible=false and the gate's reason; only a
// store failure is a 500.
func EligibilityHandler(engine *eligibility.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		result, err := engine.Evaluate(userID, memberID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"member_id": memberID,
				"error":     err.Error(),
			}).Error("Eligibility evaluation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Evaluation failed"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CheckMissingHandler reports every prerequisite still missing before an
// eligibility check makes sense: profile fields, heart-rate history depth and
// the stress assessment. Unlike the gate chain this is a single full pass.
func CheckMissingHandler(engine *eligibility.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		missing, err := engine.FindMissing(userID, memberID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"missing": missing})
	}
}

// SaveMissingRequest is the payload for completing missing profile fields
type SaveMissingRequest struct {
	MemberID uint `json:"member_id" binding:"required"` // Target member
	store.VitalsPatch
}

// SaveMissingHandler patches only the supplied profile fields, leaving
// everything else untouched.
func SaveMissingHandler(engine *eligibility.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SaveMissingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id required"})
			return
		}
		err := engine.SaveMissing(userID, req.MemberID, req.VitalsPatch)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
