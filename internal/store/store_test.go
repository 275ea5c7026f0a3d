package store

import (
	"testing"

	"health_system/internal/domain"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the health schema migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.FamilyMember{},
		&domain.HeartRateRecord{},
		&domain.StressAssessment{},
	))
	return db
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestVitalsPatchEmpty(t *testing.T) {
	require.True(t, VitalsPatch{}.Empty())
	require.True(t, VitalsPatch{Age: intPtr(0), Height: floatPtr(0)}.Empty())
	require.False(t, VitalsPatch{Age: intPtr(30)}.Empty())
	require.False(t, VitalsPatch{City: "Lahore"}.Empty())
}
