package domain

import "time"

// StressAssessment Model. At most one live row per (user, member); every
// submission overwrites the previous one rather than appending history.
type StressAssessment struct {
	ID             uint      `gorm:"primaryKey" json:"-"`                       // Primary key
	UserID         uint      `gorm:"not null;index:idx_member_stress" json:"-"` // Owning user
	MemberID       uint      `gorm:"not null;index:idx_member_stress" json:"-"` // Assessed family member
	TotalScore     int       `json:"total_score"`                               // Questionnaire total
	StressLevel    string    `json:"stress_level"`                              // Derived label
	Emotional      int       `json:"emotional"`                                 // Sub-score
	Control        int       `json:"control"`                                   // Sub-score
	Resilience     int       `json:"resilience"`                                // Sub-score
	Cognitive      int       `json:"cognitive"`                                 // Sub-score
	Anger          int       `json:"anger"`                                     // Sub-score
	InsightPresent string    `gorm:"type:text" json:"insight_present"`          // Free-text insight
	InsightPast    string    `gorm:"type:text" json:"insight_past"`             // Free-text insight
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"measured_at"`         // Last submission time
}
