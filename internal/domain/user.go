package domain

// User Model
type User struct {
	ID                 uint   `gorm:"primaryKey"`       // Primary key
	Username           string `gorm:"unique;not null"`  // Unique username
	Email              string `gorm:"unique;not null"`  // Unique email address
	PasswordHash       string `gorm:"not null"`         // Hashed password
	Role               string `gorm:"default:user"`     // Role: user, coach or admin
	VerificationStatus string `gorm:"default:approved"` // Coach approval state: pending, approved, rejected
	SelectedMemberID   *uint  // Currently selected family member, nil until first login
}
