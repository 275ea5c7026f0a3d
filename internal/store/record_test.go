package store

import (
	"testing"
	"time"

	"health_system/internal/domain"

	"github.com/stretchr/testify/require"
)

func saveAt(t *testing.T, records *GormRecordStore, userID, memberID uint, bpm int, at time.Time) {
	t.Helper()
	require.NoError(t, records.Save(&domain.HeartRateRecord{
		UserID:    userID,
		MemberID:  memberID,
		BPM:       bpm,
		CreatedAt: at,
	}))
}

func TestSaveKeepsAtMostSevenRecords(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		saveAt(t, records, 1, 1, 60+i, base.Add(time.Duration(i)*time.Minute))
	}

	count, err := records.Count(1, 1)
	require.NoError(t, err)
	require.EqualValues(t, domain.MaxRecordsPerMember, count)

	// The three oldest readings were evicted; the newest seven remain,
	// newest first.
	history, err := records.LatestN(1, 1, domain.MaxRecordsPerMember)
	require.NoError(t, err)
	require.Len(t, history, domain.MaxRecordsPerMember)
	for i, r := range history {
		require.Equal(t, 69-i, r.BPM)
	}
}

func TestSaveBelowBoundNeverEvicts(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		saveAt(t, records, 1, 1, 60+i, base.Add(time.Duration(i)*time.Minute))
	}

	count, err := records.Count(1, 1)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

func TestSaveEvictionTieBreaksByID(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	// All seven records share one timestamp; the lowest id is the oldest.
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < domain.MaxRecordsPerMember; i++ {
		saveAt(t, records, 1, 1, 60+i, at)
	}
	saveAt(t, records, 1, 1, 90, at.Add(time.Minute))

	history, err := records.LatestN(1, 1, domain.MaxRecordsPerMember)
	require.NoError(t, err)
	require.Len(t, history, domain.MaxRecordsPerMember)
	for _, r := range history {
		require.NotEqual(t, 60, r.BPM) // First insert was evicted
	}
	require.Equal(t, 90, history[0].BPM)
}

func TestSaveBoundIsPerMember(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		saveAt(t, records, 1, 1, 60+i, base.Add(time.Duration(i)*time.Minute))
	}
	saveAt(t, records, 1, 2, 80, base)
	saveAt(t, records, 2, 1, 85, base)

	count, err := records.Count(1, 1)
	require.NoError(t, err)
	require.EqualValues(t, domain.MaxRecordsPerMember, count)

	// Other members and users are unaffected by member 1's eviction
	count, err = records.Count(1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	count, err = records.Count(2, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestLatestNRequestsMoreThanStored(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	saveAt(t, records, 1, 1, 70, base)
	saveAt(t, records, 1, 1, 72, base.Add(time.Minute))

	history, err := records.LatestN(1, 1, domain.MaxRecordsPerMember)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 72, history[0].BPM)
	require.Equal(t, 70, history[1].BPM)
}

func TestLatest(t *testing.T) {
	db := testDB(t)
	records := NewRecordStore(db)

	// Nothing stored yet
	record, err := records.Latest(1, 1)
	require.NoError(t, err)
	require.Nil(t, record)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	saveAt(t, records, 1, 1, 70, base)
	saveAt(t, records, 1, 1, 76, base.Add(time.Minute))

	record, err = records.Latest(1, 1)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, 76, record.BPM)
}
