package store

import (
	"errors"

	"health_system/internal/domain"

	"gorm.io/gorm" // GORM ORM library
)

// GormRecordStore is the GORM-backed RecordStore.
type GormRecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a heart-rate record store over the given database handle.
func NewRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// Save inserts a record while holding the per-member history at
// domain.MaxRecordsPerMember rows. Count, eviction and insert run in one
// transaction so the bound stays exact under concurrent saves and a trim can
// never persist without its insert.
func (s *GormRecordStore) Save(record *domain.HeartRateRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.HeartRateRecord{}).
			Where("user_id = ? AND member_id = ?", record.UserID, record.MemberID).
			Count(&count).Error
		if err != nil {
			return err
		}
		// Evict the oldest record, tie-broken by id
		if count >= domain.MaxRecordsPerMember {
			var oldest domain.HeartRateRecord
			err := tx.Where("user_id = ? AND member_id = ?", record.UserID, record.MemberID).
				Order("created_at ASC").
				Order("id ASC").
				First(&oldest).Error
			if err != nil {
				return err
			}
			if err := tx.Delete(&oldest).Error; err != nil {
				return err // Rollback: trim must not persist without the insert
			}
		}
		return tx.Create(record).Error
	})
}

// LatestN returns up to n records for the member, newest first.
func (s *GormRecordStore) LatestN(userID, memberID uint, n int) ([]domain.HeartRateRecord, error) {
	var records []domain.HeartRateRecord
	err := s.db.Where("user_id = ? AND member_id = ?", userID, memberID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Latest returns the newest record, or nil when none exists.
func (s *GormRecordStore) Latest(userID, memberID uint) (*domain.HeartRateRecord, error) {
	var record domain.HeartRateRecord
	err := s.db.Where("user_id = ? AND member_id = ?", userID, memberID).
		Order("created_at DESC").
		Order("id DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Count returns the number of stored records for the member.
func (s *GormRecordStore) Count(userID, memberID uint) (int64, error) {
	var count int64
	err := s.db.Model(&domain.HeartRateRecord{}).
		Where("user_id = ? AND member_id = ?", userID, memberID).
		Count(&count).Error
	return count, err
}
