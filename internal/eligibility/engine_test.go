package eligibility

import (
	"errors"
	"testing"

	"health_system/internal/domain"
	"health_system/internal/store"

	"github.com/stretchr/testify/require"
)

// fakeMembers serves a single member keyed by (userID, memberID).
type fakeMembers struct {
	userID   uint
	memberID uint
	member   *domain.FamilyMember
	patched  []store.VitalsPatch
	err      error
}

func (f *fakeMembers) Find(userID, memberID uint) (*domain.FamilyMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	if userID != f.userID || memberID != f.memberID || f.member == nil {
		return nil, store.ErrNotFound
	}
	return f.member, nil
}

func (f *fakeMembers) UpdateVitals(userID, memberID uint, patch store.VitalsPatch) error {
	if userID != f.userID || memberID != f.memberID {
		return store.ErrNotFound
	}
	f.patched = append(f.patched, patch)
	return nil
}

type fakeRecords struct {
	records []domain.HeartRateRecord
	err     error
}

func (f *fakeRecords) LatestN(userID, memberID uint, n int) ([]domain.HeartRateRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if n > len(f.records) {
		n = len(f.records)
	}
	return f.records[:n], nil
}

func (f *fakeRecords) Count(userID, memberID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.records)), nil
}

type fakeStress struct {
	assessment *domain.StressAssessment
	err        error
}

func (f *fakeStress) Latest(userID, memberID uint) (*domain.StressAssessment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assessment, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// healthyMember is a member that passes every profile gate.
func healthyMember() *domain.FamilyMember {
	return &domain.FamilyMember{
		MemberID:     1,
		UserID:       1,
		MemberName:   "dana",
		Relationship: domain.RelationshipSelf,
		Age:          intPtr(30),
		Height:       floatPtr(175),
		Weight:       floatPtr(70),
	}
}

func bpmRecords(bpms ...int) []domain.HeartRateRecord {
	records := make([]domain.HeartRateRecord, len(bpms))
	for i, bpm := range bpms {
		records[i] = domain.HeartRateRecord{UserID: 1, MemberID: 1, BPM: bpm}
	}
	return records
}

func newTestEngine(member *domain.FamilyMember, records []domain.HeartRateRecord, assessment *domain.StressAssessment) (*Engine, *fakeMembers) {
	members := &fakeMembers{userID: 1, memberID: 1, member: member}
	return NewEngine(
		members,
		&fakeRecords{records: records},
		&fakeStress{assessment: assessment},
	), members
}

func TestEvaluateEligible(t *testing.T) {
	engine, _ := newTestEngine(
		healthyMember(),
		bpmRecords(68, 70, 72),
		&domain.StressAssessment{TotalScore: 10},
	)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Empty(t, result.Reason)
	require.Equal(t, 22.9, result.BMI)
	require.Equal(t, 70, result.AvgHR)
	require.Equal(t, 10, result.StressScore)
	require.Equal(t, "Check hemoglobin before donation", result.Note)
}

func TestEvaluateMemberNotFound(t *testing.T) {
	engine, _ := newTestEngine(nil, nil, nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "Member not found", result.Reason)
}

func TestEvaluateAgeGate(t *testing.T) {
	tests := []struct {
		name string
		age  *int
	}{
		{name: "missing age", age: nil},
		{name: "zero age", age: intPtr(0)},
		{name: "too young", age: intPtr(17)},
		{name: "too old", age: intPtr(66)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := healthyMember()
			member.Age = tt.age
			engine, _ := newTestEngine(member, bpmRecords(70, 70, 70), nil)

			result, err := engine.Evaluate(1, 1)
			require.NoError(t, err)
			require.False(t, result.Eligible)
			require.Equal(t, "Age must be 18–65 years", result.Reason)
		})
	}
}

func TestEvaluateVitalsGate(t *testing.T) {
	tests := []struct {
		name   string
		height *float64
		weight *float64
	}{
		{name: "height missing", height: nil, weight: floatPtr(70)},
		{name: "weight missing", height: floatPtr(175), weight: nil},
		{name: "zero height", height: floatPtr(0), weight: floatPtr(70)},
		{name: "both missing", height: nil, weight: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := healthyMember()
			member.Height = tt.height
			member.Weight = tt.weight
			engine, _ := newTestEngine(member, bpmRecords(70, 70, 70), nil)

			result, err := engine.Evaluate(1, 1)
			require.NoError(t, err)
			require.False(t, result.Eligible)
			require.Equal(t, "Height/Weight missing", result.Reason)
		})
	}
}

func TestEvaluateBMIGate(t *testing.T) {
	member := healthyMember()
	member.Height = floatPtr(150)
	member.Weight = floatPtr(200)
	engine, _ := newTestEngine(member, bpmRecords(70, 70, 70), nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "BMI unsafe (88.9)", result.Reason)
}

func TestEvaluateBMIGateUnderweight(t *testing.T) {
	member := healthyMember()
	member.Weight = floatPtr(50)
	engine, _ := newTestEngine(member, bpmRecords(70, 70, 70), nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "BMI unsafe (16.3)", result.Reason)
}

func TestEvaluateNotEnoughRecords(t *testing.T) {
	engine, _ := newTestEngine(healthyMember(), bpmRecords(70, 72), nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "Not enough heart rate data", result.Reason)
}

func TestEvaluateUnstableHeartRate(t *testing.T) {
	engine, _ := newTestEngine(healthyMember(), bpmRecords(115, 120, 125), nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "Unstable heart rate (120 BPM)", result.Reason)
}

func TestEvaluateHighStress(t *testing.T) {
	engine, _ := newTestEngine(
		healthyMember(),
		bpmRecords(68, 70, 72),
		&domain.StressAssessment{TotalScore: 26},
	)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "High stress detected", result.Reason)
}

func TestEvaluateNoStressAssessment(t *testing.T) {
	// A missing assessment never fails the chain; the score reads "NA".
	engine, _ := newTestEngine(healthyMember(), bpmRecords(68, 70, 72), nil)

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, "NA", result.StressScore)
}

func TestEvaluateGateOrder(t *testing.T) {
	// Several gates would fail; the age gate must win because it runs first.
	member := healthyMember()
	member.Age = intPtr(10)
	member.Height = floatPtr(150)
	member.Weight = floatPtr(200)
	engine, _ := newTestEngine(member, nil, &domain.StressAssessment{TotalScore: 40})

	result, err := engine.Evaluate(1, 1)
	require.NoError(t, err)
	require.Equal(t, "Age must be 18–65 years", result.Reason)
}

func TestEvaluateStoreError(t *testing.T) {
	dbDown := errors.New("connection refused")
	engine := NewEngine(
		&fakeMembers{err: dbDown},
		&fakeRecords{},
		&fakeStress{},
	)

	_, err := engine.Evaluate(1, 1)
	require.ErrorIs(t, err, dbDown)
}

func TestFindMissingAll(t *testing.T) {
	member := healthyMember()
	member.Age = nil
	member.Height = nil
	member.Weight = nil
	engine, _ := newTestEngine(member, nil, nil)

	missing, err := engine.FindMissing(1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"age", "height", "weight", "heart_rate", "stress"}, missing)
}

func TestFindMissingNone(t *testing.T) {
	engine, _ := newTestEngine(
		healthyMember(),
		bpmRecords(68, 70, 72),
		&domain.StressAssessment{TotalScore: 10},
	)

	missing, err := engine.FindMissing(1, 1)
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestFindMissingSubset(t *testing.T) {
	member := healthyMember()
	member.Weight = floatPtr(0) // zero counts as missing
	engine, _ := newTestEngine(member, bpmRecords(70, 72), nil)

	missing, err := engine.FindMissing(1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"weight", "heart_rate", "stress"}, missing)
}

func TestFindMissingUnknownMember(t *testing.T) {
	engine, _ := newTestEngine(nil, nil, nil)

	_, err := engine.FindMissing(1, 1)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveMissingForwardsPatch(t *testing.T) {
	engine, members := newTestEngine(healthyMember(), nil, nil)

	patch := store.VitalsPatch{Age: intPtr(28), Height: floatPtr(180)}
	require.NoError(t, engine.SaveMissing(1, 1, patch))
	require.Len(t, members.patched, 1)
	require.Equal(t, patch, members.patched[0])
}

func TestSaveMissingUnknownMember(t *testing.T) {
	engine, _ := newTestEngine(healthyMember(), nil, nil)

	err := engine.SaveMissing(1, 99, store.VitalsPatch{Age: intPtr(28)})
	require.ErrorIs(t, err, store.ErrNotFound)
}
