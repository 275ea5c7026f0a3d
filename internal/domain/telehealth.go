package domain

import "time"

// CoachNote Model
type CoachNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	CoachID   uint      `gorm:"not null" json:"coach_id"`        // Authoring coach
	UserID    uint      `gorm:"not null;index" json:"-"`         // Receiving patient
	Note      string    `gorm:"type:text;not null" json:"note"`  // Note body
	Seen      bool      `gorm:"default:false" json:"seen"`       // Whether the patient has read it
	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"` // Timestamp of creation
}

// ConsultationRequest Model
type ConsultationRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID    uint      `gorm:"not null" json:"patient_id"`       // Requesting patient
	CoachID   uint      `gorm:"not null;index" json:"coach_id"`   // Target coach
	Reason    string    `gorm:"not null" json:"reason"`           // Short reason
	Details   string    `gorm:"type:text" json:"details"`         // Optional details
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
}

// Feedback Model
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`             // Primary key
	UserID       uint      `gorm:"not null" json:"-"`                // Submitting user
	Name         string    `json:"name"`                             // Snapshot of username
	Email        string    `json:"email"`                            // Snapshot of email
	FeedbackType string    `json:"feedback_type"`                    // Category label
	Rating       int       `json:"rating"`                           // 1-5
	Message      string    `gorm:"type:text" json:"message"`         // Feedback body
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
}
