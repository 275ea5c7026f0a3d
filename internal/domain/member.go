package domain

// RelationshipSelf marks the one member row that mirrors the account owner.
// At most one member per user may carry it.
const RelationshipSelf = "self"

// FamilyMember Model
type FamilyMember struct {
	MemberID     uint     `gorm:"primaryKey" json:"id"`           // Primary key
	UserID       uint     `gorm:"not null;index" json:"-"`        // Owning user
	MemberName   string   `gorm:"not null" json:"name"`           // Display name
	Relationship string   `gorm:"not null" json:"relationship"`   // Free-form label, "self" is special
	Age          *int     `json:"age"`                            // Years, nil until populated
	Gender       string   `json:"gender"`                         // Optional
	City         string   `json:"city"`                           // Optional, used for AQI lookups
	BloodType    string   `json:"blood_type"`                     // Optional
	Height       *float64 `json:"height"`                         // Centimeters, nil until populated
	Weight       *float64 `json:"weight"`                         // Kilograms, nil until populated
}

// HasAge reports whether a usable age is set (nil and zero both count as missing).
func (m *FamilyMember) HasAge() bool {
	return m.Age != nil && *m.Age != 0
}

// HasHeight reports whether a usable height is set.
func (m *FamilyMember) HasHeight() bool {
	return m.Height != nil && *m.Height != 0
}

// HasWeight reports whether a usable weight is set.
func (m *FamilyMember) HasWeight() bool {
	return m.Weight != nil && *m.Weight != 0
}
