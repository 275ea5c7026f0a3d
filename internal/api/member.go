package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Time durations

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/store"  // Repository layer
	"health_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// AddMemberRequest is the payload for adding a family member
type AddMemberRequest struct {
	Name         string `json:"name" binding:"required"`         // Display name
	Relationship string `json:"relationship" binding:"required"` // Relationship label
}

// ListMembersHandler returns all family members of the caller, self first.
func ListMembersHandler(members store.MemberStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		list, err := members.List(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
			return
		}
		resp := make([]gin.H, len(list))
		for i, m := range list {
			resp[i] = gin.H{
				"id":           m.MemberID,
				"name":         m.MemberName,
				"relationship": m.Relationship,
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// AddMemberHandler creates a new family member for the caller.
func AddMemberHandler(members store.MemberStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AddMemberRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		member := domain.FamilyMember{
			UserID:       userID,
			MemberName:   req.Name,
			Relationship: strings.ToLower(req.Relationship),
		}
		if err := members.Create(&member); err != nil {
			// A second "self" row violates the one-self-per-user invariant
			if errors.Is(err, store.ErrSelfExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A self profile already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to add member")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "id": member.MemberID})
	}
}

// DeleteMemberHandler removes a non-self member together with its health
// records and stress assessment.
func DeleteMemberHandler(members store.MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := idParam(c, "id")
		if !ok {
			return
		}
		member, err := members.Find(userID, memberID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// The main profile can never be removed
		if member.Relationship == domain.RelationshipSelf {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your main profile"})
			return
		}
		if err := members.Delete(userID, memberID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"member_id": memberID,
				"error":     err.Error(),
			}).Error("Failed to delete member")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Drop cached reads for the deleted member
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, utils.MemberCacheKey(userID, memberID))
		_ = utils.DeleteCache(ctx, rdb, utils.RecordsCacheKey(userID, memberID))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetMemberHandler returns one member's profile details, served from cache
// when fresh.
func GetMemberHandler(members store.MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := idParam(c, "id")
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := utils.MemberCacheKey(userID, memberID)
		var member domain.FamilyMember
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &member)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"member": member, "cached": true})
			return
		}
		fetched, err := members.Find(userID, memberID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, fetched, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"member": fetched, "cached": false})
	}
}

// UpdateMemberVitalsHandler applies a partial update to a member's medical
// attributes. Absent fields are left untouched.
func UpdateMemberVitalsHandler(members store.MemberStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var patch store.VitalsPatch // Bind JSON request to struct
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		err := members.UpdateVitals(userID, memberID, patch)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Invalidate the cached profile after the write
		_ = utils.DeleteCache(context.Background(), rdb, utils.MemberCacheKey(userID, memberID))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SelectMemberRequest is the payload for switching the active member
type SelectMemberRequest struct {
	MemberID uint `json:"member_id" binding:"required"` // Target member
}

// SetSelectedMemberHandler persists which member the caller is tracking.
func SetSelectedMemberHandler(db *gorm.DB, members store.MemberStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SelectMemberRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id required"})
			return
		}
		// Ownership check before persisting the selection
		if _, err := members.Find(userID, req.MemberID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid member"})
			return
		}
		if err := db.Model(&domain.User{}).Where("id = ?", userID).
			Update("selected_member_id", req.MemberID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetSelectedMemberHandler returns the caller's active member, nil when unset.
func GetSelectedMemberHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"member_id": user.SelectedMemberID})
	}
}
