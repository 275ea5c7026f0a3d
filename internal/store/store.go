// Package store provides the persistence layer behind the health-tracking
// core: family member profiles, the bounded heart-rate history and the latest
// stress assessment per member. Implementations are GORM-backed; consumers
// depend on the interfaces so decision logic stays unit-testable against
// in-memory fakes.
package store

import (
	"errors"

	"health_system/internal/domain"
)

// ErrNotFound is returned when a row does not exist or does not belong to the
// requesting user.
var ErrNotFound = errors.New("record not found")

// ErrSelfExists is returned when a second "self" member would be created for
// the same user.
var ErrSelfExists = errors.New("self member already exists")

// VitalsPatch carries a partial update of a member's medical attributes.
// Nil or zero fields are left untouched, never nulled out.
type VitalsPatch struct {
	Age       *int     `json:"age"`
	Height    *float64 `json:"height"`
	Weight    *float64 `json:"weight"`
	City      string   `json:"city"`
	Gender    string   `json:"gender"`
	BloodType string   `json:"blood_type"`
}

// Empty reports whether the patch carries no usable field.
func (p VitalsPatch) Empty() bool {
	return (p.Age == nil || *p.Age == 0) &&
		(p.Height == nil || *p.Height == 0) &&
		(p.Weight == nil || *p.Weight == 0) &&
		p.City == "" && p.Gender == "" && p.BloodType == ""
}

// MemberStore persists family member profiles scoped to their owning user.
type MemberStore interface {
	// Find returns the member only when it exists and belongs to userID.
	Find(userID, memberID uint) (*domain.FamilyMember, error)
	// List returns all members of a user, "self" first then by name.
	List(userID uint) ([]domain.FamilyMember, error)
	// Create inserts a new member, refusing a duplicate "self" row.
	Create(member *domain.FamilyMember) error
	// EnsureSelf fetches the user's "self" member, creating it when absent.
	EnsureSelf(userID uint, name string) (*domain.FamilyMember, error)
	// UpdateVitals applies a partial patch to a member's medical attributes.
	UpdateVitals(userID, memberID uint, patch VitalsPatch) error
	// Delete removes a member together with its heart-rate records and
	// stress assessment in one transaction.
	Delete(userID, memberID uint) error
}

// RecordStore persists the bounded heart-rate history per (user, member).
type RecordStore interface {
	// Save inserts a record, evicting the oldest one in the same
	// transaction once the per-member bound is reached.
	Save(record *domain.HeartRateRecord) error
	// LatestN returns up to n records for the member, newest first.
	LatestN(userID, memberID uint, n int) ([]domain.HeartRateRecord, error)
	// Latest returns the newest record, or nil when none exists.
	Latest(userID, memberID uint) (*domain.HeartRateRecord, error)
	// Count returns the number of stored records for the member.
	Count(userID, memberID uint) (int64, error)
}

// StressStore persists the latest stress assessment per (user, member).
type StressStore interface {
	// Upsert overwrites the member's assessment, creating it when absent.
	Upsert(assessment *domain.StressAssessment) error
	// Latest returns the member's assessment, or nil when none exists.
	Latest(userID, memberID uint) (*domain.StressAssessment, error)
}
