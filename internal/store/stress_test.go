package store

import (
	"testing"

	"health_system/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestStressUpsertKeepsSingleRow(t *testing.T) {
	db := testDB(t)
	stress := NewStressStore(db)

	require.NoError(t, stress.Upsert(&domain.StressAssessment{
		UserID:      1,
		MemberID:    1,
		TotalScore:  18,
		StressLevel: "Moderate",
	}))
	require.NoError(t, stress.Upsert(&domain.StressAssessment{
		UserID:      1,
		MemberID:    1,
		TotalScore:  31,
		StressLevel: "High",
	}))

	// The second submission overwrote the first; no history is kept
	var count int64
	require.NoError(t, db.Model(&domain.StressAssessment{}).
		Where("user_id = ? AND member_id = ?", 1, 1).
		Count(&count).Error)
	require.EqualValues(t, 1, count)

	latest, err := stress.Latest(1, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, 31, latest.TotalScore)
	require.Equal(t, "High", latest.StressLevel)
}

func TestStressUpsertScopedPerMember(t *testing.T) {
	db := testDB(t)
	stress := NewStressStore(db)

	require.NoError(t, stress.Upsert(&domain.StressAssessment{UserID: 1, MemberID: 1, TotalScore: 10}))
	require.NoError(t, stress.Upsert(&domain.StressAssessment{UserID: 1, MemberID: 2, TotalScore: 20}))
	require.NoError(t, stress.Upsert(&domain.StressAssessment{UserID: 2, MemberID: 1, TotalScore: 30}))

	latest, err := stress.Latest(1, 1)
	require.NoError(t, err)
	require.Equal(t, 10, latest.TotalScore)

	latest, err = stress.Latest(1, 2)
	require.NoError(t, err)
	require.Equal(t, 20, latest.TotalScore)

	latest, err = stress.Latest(2, 1)
	require.NoError(t, err)
	require.Equal(t, 30, latest.TotalScore)
}

func TestStressLatestAbsent(t *testing.T) {
	db := testDB(t)
	stress := NewStressStore(db)

	latest, err := stress.Latest(1, 1)
	require.NoError(t, err)
	require.Nil(t, latest)
}
