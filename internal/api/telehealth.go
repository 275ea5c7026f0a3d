package api

import (
	"net/http" // HTTP status codes
	"time"     // Timestamp formatting

	"health_system/internal/domain" // Importing domain models
	"health_system/internal/store"  // Repository layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ListCoachesHandler returns all approved coaches patients can contact.
func ListCoachesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			return
		}
		var coaches []domain.User
		err := db.Where("role = ? AND verification_status = ?", "coach", "approved").
			Find(&coaches).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coaches"})
			return
		}
		resp := make([]gin.H, len(coaches))
		for i, coach := range coaches {
			resp[i] = gin.H{"id": coach.ID, "username": coach.Username}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ConsultationRequestBody is the payload for requesting a consultation
type ConsultationRequestBody struct {
	CoachID uint   `json:"coach_id" binding:"required"` // Target coach
	Reason  string `json:"reason" binding:"required"`   // Short reason
	Details string `json:"details"`                     // Optional details
}

// SubmitConsultationHandler files a consultation request with a coach.
func SubmitConsultationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ConsultationRequestBody // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		request := domain.ConsultationRequest{
			UserID:  userID,
			CoachID: req.CoachID,
			Reason:  req.Reason,
			Details: req.Details,
		}
		if err := db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// CoachRequestsHandler returns the coach's consultation inbox, newest first.
func CoachRequestsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		coachID, ok := currentUserID(c)
		if !ok {
			return
		}
		var requests []domain.ConsultationRequest
		err := db.Where("coach_id = ?", coachID).
			Order("created_at DESC").
			Find(&requests).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
			return
		}
		resp := make([]gin.H, len(requests))
		for i, r := range requests {
			patient := "Unknown"
			var user domain.User
			if err := db.First(&user, r.UserID).Error; err == nil {
				patient = user.Username
			}
			resp[i] = gin.H{
				"id":         r.ID,
				"patient_id": r.UserID,
				"patient":    patient,
				"reason":     r.Reason,
				"details":    r.Details,
				"created_at": r.CreatedAt.Format(time.RFC3339),
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// PatientSnapshotHandler gives a coach an aggregate view of one patient:
// heart-rate stats over the retained window plus the latest stress scores.
func PatientSnapshotHandler(db *gorm.DB, records store.RecordStore, stress store.StressStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, ok := idParam(c, "id")
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		var patient domain.User
		if err := db.First(&patient, patientID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		history, err := records.LatestN(patientID, memberID, domain.MaxRecordsPerMember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		heartRate := gin.H{"avg": nil, "max": nil, "min": nil, "history": []gin.H{}}
		if len(history) > 0 {
			sum, maxBPM, minBPM := 0, history[0].BPM, history[0].BPM
			views := make([]gin.H, 0, len(history))
			// Oldest first for charting
			for i := len(history) - 1; i >= 0; i-- {
				r := history[i]
				sum += r.BPM
				if r.BPM > maxBPM {
					maxBPM = r.BPM
				}
				if r.BPM < minBPM {
					minBPM = r.BPM
				}
				views = append(views, gin.H{
					"bpm":  r.BPM,
					"time": r.CreatedAt.Format("02 Jan 2006 03:04 PM"),
				})
			}
			heartRate = gin.H{
				"avg":     (sum + len(history)/2) / len(history),
				"max":     maxBPM,
				"min":     minBPM,
				"history": views,
			}
		}
		assessment, err := stress.Latest(patientID, memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		stressView := gin.H{"total_score": nil, "stress_level": nil}
		if assessment != nil {
			stressView = gin.H{
				"total_score":  assessment.TotalScore,
				"stress_level": assessment.StressLevel,
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"username":   patient.Username,
			"heart_rate": heartRate,
			"stress":     stressView,
		})
	}
}

// AddNoteRequest is the payload for a coach note
type AddNoteRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"` // Receiving patient
	Note      string `json:"note" binding:"required"`       // Note body
}

// AddCoachNoteHandler lets a coach leave a note for a patient.
func AddCoachNoteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		coachID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AddNoteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		note := domain.CoachNote{
			CoachID: coachID,
			UserID:  req.PatientID,
			Note:    req.Note,
		}
		if err := db.Create(&note).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"coach_id":   coachID,
				"patient_id": req.PatientID,
				"error":      err.Error(),
			}).Error("Failed to save coach note")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save note"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved"})
	}
}

// NoteTimelineHandler returns all coach notes for the calling patient,
// newest first.
func NoteTimelineHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var notes []domain.CoachNote
		err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&notes).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
			return
		}
		timeline := make([]gin.H, len(notes))
		for i, n := range notes {
			coachName, coachEmail := "", ""
			var coach domain.User
			if err := db.First(&coach, n.CoachID).Error; err == nil {
				coachName = coach.Username
				coachEmail = coach.Email
			}
			timeline[i] = gin.H{
				"id":          n.ID,
				"note":        n.Note,
				"coach_name":  coachName,
				"coach_email": coachEmail,
				"timestamp":   n.CreatedAt.Format(time.RFC3339),
				"seen":        n.Seen,
			}
		}
		c.JSON(http.StatusOK, timeline)
	}
}

// MarkSeenRequest is the payload for acknowledging a note
type MarkSeenRequest struct {
	NoteID uint `json:"note_id" binding:"required"` // Acknowledged note
}

// MarkNoteSeenHandler marks one of the caller's notes as read.
func MarkNoteSeenHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req MarkSeenRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		// Scoped to the caller so notes of other patients cannot be touched
		err := db.Model(&domain.CoachNote{}).
			Where("id = ? AND user_id = ?", req.NoteID, userID).
			Update("seen", true).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "seen"})
	}
}

// TelehealthDataHandler returns the patient dashboard strip: the latest coach
// note and the member's latest reading.
func TelehealthDataHandler(db *gorm.DB, records store.RecordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		memberID, ok := memberIDQuery(c)
		if !ok {
			return
		}
		var note domain.CoachNote
		var coachNote any
		err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			First(&note).Error
		if err == nil {
			coachNote = note.Note
		}
		record, err := records.Latest(userID, memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		bpm, stressLabel := any("--"), any("--")
		if record != nil {
			bpm = record.BPM
			stressLabel = record.StressLevel
		}
		c.JSON(http.StatusOK, gin.H{
			"avg_bpm":    bpm,
			"stress":     stressLabel,
			"coach_note": coachNote,
		})
	}
}

// FeedbackRequest is the payload for product feedback
type FeedbackRequest struct {
	Type    string `json:"type"`                         // Category label
	Rating  int    `json:"rating" binding:"min=0,max=5"` // 1-5
	Message string `json:"message" binding:"required"`   // Feedback body
}

// SubmitFeedbackHandler stores product feedback with a snapshot of who sent it.
func SubmitFeedbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req FeedbackRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
			return
		}
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		feedback := domain.Feedback{
			UserID:       userID,
			Name:         user.Username,
			Email:        user.Email,
			FeedbackType: req.Type,
			Rating:       req.Rating,
			Message:      req.Message,
		}
		if err := db.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
