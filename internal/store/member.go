package store

import (
	"errors"

	"health_system/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// GormMemberStore is the GORM-backed MemberStore.
type GormMemberStore struct {
	db *gorm.DB
}

// NewMemberStore creates a member store over the given database handle.
func NewMemberStore(db *gorm.DB) *GormMemberStore {
	return &GormMemberStore{db: db}
}

// Find returns the member only when it exists and belongs to userID.
func (s *GormMemberStore) Find(userID, memberID uint) (*domain.FamilyMember, error) {
	var member domain.FamilyMember
	err := s.db.Where("member_id = ? AND user_id = ?", memberID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound // Missing or owned by someone else
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns all members of a user, "self" first then by name.
func (s *GormMemberStore) List(userID uint) ([]domain.FamilyMember, error) {
	var members []domain.FamilyMember
	err := s.db.Where("user_id = ?", userID).
		Order("relationship = 'self' DESC").
		Order("member_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Create inserts a new member. The one-self-per-user invariant is enforced
// here because MySQL has no partial unique indexes.
func (s *GormMemberStore) Create(member *domain.FamilyMember) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if member.Relationship == domain.RelationshipSelf {
			var count int64
			err := tx.Model(&domain.FamilyMember{}).
				Where("user_id = ? AND relationship = ?", member.UserID, domain.RelationshipSelf).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrSelfExists
			}
		}
		return tx.Create(member).Error
	})
}

// EnsureSelf fetches the user's "self" member, creating it when absent.
func (s *GormMemberStore) EnsureSelf(userID uint, name string) (*domain.FamilyMember, error) {
	var member domain.FamilyMember
	err := s.db.Where("user_id = ? AND relationship = ?", userID, domain.RelationshipSelf).
		First(&member).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	member = domain.FamilyMember{
		UserID:       userID,
		MemberName:   name,
		Relationship: domain.RelationshipSelf,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateVitals applies a partial patch: nil or zero fields stay untouched.
func (s *GormMemberStore) UpdateVitals(userID, memberID uint, patch VitalsPatch) error {
	member, err := s.Find(userID, memberID)
	if err != nil {
		return err
	}
	updates := map[string]any{}
	if patch.Age != nil && *patch.Age != 0 {
		updates["age"] = *patch.Age
	}
	if patch.Height != nil && *patch.Height != 0 {
		updates["height"] = *patch.Height
	}
	if patch.Weight != nil && *patch.Weight != 0 {
		updates["weight"] = *patch.Weight
	}
	if patch.City != "" {
		updates["city"] = patch.City
	}
	if patch.Gender != "" {
		updates["gender"] = patch.Gender
	}
	if patch.BloodType != "" {
		updates["blood_type"] = patch.BloodType
	}
	if len(updates) == 0 {
		return nil // Nothing to change
	}
	return s.db.Model(member).Updates(updates).Error
}

// Delete removes a member and cascades its heart-rate records and stress
// assessment. The whole cascade is one transaction.
func (s *GormMemberStore) Delete(userID, memberID uint) error {
	member, err := s.Find(userID, memberID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND member_id = ?", userID, memberID).
			Delete(&domain.HeartRateRecord{}).Error; err != nil {
			return err // Rollback on failure
		}
		if err := tx.Where("user_id = ? AND member_id = ?", userID, memberID).
			Delete(&domain.StressAssessment{}).Error; err != nil {
			return err // Rollback on failure
		}
		return tx.Delete(member).Error
	})
}
