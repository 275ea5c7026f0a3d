package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Time durations

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/store"  // Repository layer
	"health_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SaveRecordRequest is the payload for one heart-rate reading
type SaveRecordRequest struct {
	MemberID uint     `json:"member_id" binding:"required"` // Measured member
	BPM      int      `json:"bpm" binding:"required,gt=0"`  // Beats per minute
	AQI      int      `json:"aqi"`                          // Air quality index, optional
	PM25     *float64 `json:"pm25"`                         // Raw PM2.5, optional
	PM10     *float64 `json:"pm10"`                         // Raw PM10, optional
	Stress   string   `json:"stress"`                       // Self-reported stress label
	Impact   string   `json:"impact"`                       // Air quality impact label
}

// recordView is the reading shape returned to clients
type recordView struct {
	BPM        int      `json:"bpm"`
	MemberName string   `json:"member_name"`
	Time       string   `json:"time"`
	AQI        int      `json:"aqi"`
	PM25       *float64 `json:"pm25"`
	PM10       *float64 `json:"pm10"`
}

// SaveHeartRateHandler stores one reading for a member the caller owns. The
// store keeps at most the 7 newest readings per member; the oldest is evicted
// in the same transaction as the insert.
func SaveHeartRateHandler(members store.MemberStore, records store.RecordStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SaveRecordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id and bpm required"})
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
		record := domain.HeartRateRecord{
			UserID:         userID,
			MemberID:       req.MemberID,
			BPM:            req.BPM,
			AQI:            req.AQI,
			PM25:           req.PM25,
			PM10:           req.PM10,
			StressLevel:    req.Stress,
			ImpactCategory: req.Impact,
		}
		if err := records.Save(&record); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"member_id": req.MemberID,
				"bpm":       req.BPM,
				"error":     err.Error(),
			}).Error("Failed to save heart rate record")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save record"})
			return
		}
		// Log successful save
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"member_id": req.MemberID,
			"bpm":       req.BPM,
			"timestamp": time.Now().Format(time.RFC3339),
		}).Info("Heart rate record saved")
		// Invalidate the cached last-7 window for this member
		_ = utils.DeleteCache(context.Background(), rdb, utils.RecordsCacheKey(userID, req.MemberID))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// LastSevenHandler returns the member's retained reading window, newest
// first, served from cache when fresh.
func LastSevenHandler(members store.MemberStore, records store.RecordStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		ctx := context.Background()
		cacheKey := utils.RecordsCacheKey(userID, memberID)
		var cached []recordView
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
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
		list, err := records.LatestN(userID, memberID, domain.MaxRecordsPerMember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
			return
		}
		resp := make([]recordView, len(list))
		for i, r := range list {
			resp[i] = recordView{
				BPM:        r.BPM,
				MemberName: member.MemberName,
				Time:       r.CreatedAt.Format("02 Jan 2006 03:04 PM"),
				AQI:        r.AQI,
				PM25:       r.PM25,
				PM10:       r.PM10,
			}
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, resp)
	}
}

// LatestSummaryHandler returns the member's newest reading, or exists=false
// when nothing has been recorded yet.
func LatestSummaryHandler(members store.MemberStore, records store.RecordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		record, err := records.Latest(userID, memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if record == nil {
			c.JSON(http.StatusOK, gin.H{"exists": false})
			return
		}
		memberName := currentUsername(c)
		relationship := "Self"
		if member, err := members.Find(userID, memberID); err == nil {
			memberName = member.MemberName
			relationship = member.Relationship
		}
		c.JSON(http.StatusOK, gin.H{
			"exists":         true,
			"bpm":            record.BPM,
			"member_name":    memberName,
			"relationship":   relationship,
			"aqi":            record.AQI,
			"impactCategory": record.ImpactCategory,
			"message":        record.StressLevel,
			"timestamp":      record.CreatedAt.Format(time.RFC3339),
		})
	}
}
