package domain

import "time"

// MaxRecordsPerMember bounds the heart-rate history kept per (user, member)
// pair. The store behaves as a fixed-capacity FIFO ring: inserting beyond the
// bound evicts the oldest record in the same transaction.
const MaxRecordsPerMember = 7

// HeartRateRecord Model
type HeartRateRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID         uint      `gorm:"not null;index:idx_member_records" json:"-"` // Owning user
	MemberID       uint      `gorm:"not null;index:idx_member_records" json:"-"` // Measured family member
	BPM            int       `gorm:"not null" json:"bpm"`                        // Beats per minute
	AQI            int       `json:"aqi"`                                        // Air quality index at measurement time
	PM25           *float64  `json:"pm25"`                                       // Raw PM2.5 reading, nil when unknown
	PM10           *float64  `json:"pm10"`                                       // Raw PM10 reading, nil when unknown
	StressLevel    string    `json:"stress_level"`                               // Self-reported label
	ImpactCategory string    `json:"impact_category"`                            // Air quality impact label
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`           // Timestamp of creation
}
