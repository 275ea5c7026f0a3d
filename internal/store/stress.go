package store

import (
	"errors"

	"health_system/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// GormStressStore is the GORM-backed StressStore.
type GormStressStore struct {
	db *gorm.DB
}

// NewStressStore creates a stress assessment store over the given database handle.
func NewStressStore(db *gorm.DB) *GormStressStore {
	return &GormStressStore{db: db}
}

// Upsert overwrites the member's assessment, creating the row when absent.
// The store never keeps history; the latest submission always wins.
func (s *GormStressStore) Upsert(assessment *domain.StressAssessment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.StressAssessment
		err := tx.Where("user_id = ? AND member_id = ?", assessment.UserID, assessment.MemberID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			assessment.ID = existing.ID // Overwrite the live row in place
		}
		return tx.Save(assessment).Error
	})
}

// Latest returns the member's assessment, or nil when none exists. Absence is
// not an error: the eligibility engine treats a missing assessment as a
// separate surfaced condition, not a failure.
func (s *GormStressStore) Latest(userID, memberID uint) (*domain.StressAssessment, error) {
	var assessment domain.StressAssessment
	err := s.db.Where("user_id = ? AND member_id = ?", userID, memberID).
		Order("updated_at DESC").
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
