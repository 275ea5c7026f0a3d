// Package eligibility implements the blood-donation eligibility engine. It
// composes member profile data, the bounded heart-rate history and the latest
// stress assessment into a pass/fail verdict with a human-readable reason.
// The engine performs no I/O of its own; all data access goes through the
// injected store interfaces.
package eligibility

import (
	"errors"
	"fmt"
	"math"

	"health_system/internal/domain"
	"health_system/internal/health"
	"health_system/internal/store"
)

// Gate bounds for a safe donation.
const (
	minDonorAge    = 18
	maxDonorAge    = 65
	minDonorBMI    = 18.5
	maxDonorBMI    = 30.0
	minRecords     = 3
	minAvgBPM      = 50.0
	maxAvgBPM      = 100.0
	maxStressScore = 25
)

// Decline reasons, in gate order. Evaluation short-circuits at the first
// failing gate so the surfaced reason is deterministic.
const (
	reasonMemberNotFound = "Member not found"
	reasonAgeOutOfRange  = "Age must be 18–65 years"
	reasonVitalsMissing  = "Height/Weight missing"
	reasonNotEnoughData  = "Not enough heart rate data"
	reasonHighStress     = "High stress detected"

	eligibleNote = "Check hemoglobin before donation"
)

// Result is the outcome of an eligibility evaluation. On a decline only
// Eligible and Reason are set; on a pass the aggregates are filled in and
// StressScore is either the score or "NA" when no assessment exists.
type Result struct {
	Eligible    bool    `json:"eligible"`
	Reason      string  `json:"reason,omitempty"`
	BMI         float64 `json:"bmi,omitempty"`
	AvgHR       int     `json:"avg_hr,omitempty"`
	StressScore any     `json:"stress_score,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// MemberSource is the slice of the member store the engine consumes.
type MemberSource interface {
	Find(userID, memberID uint) (*domain.FamilyMember, error)
	UpdateVitals(userID, memberID uint, patch store.VitalsPatch) error
}

// RecordSource is the slice of the heart-rate store the engine consumes.
type RecordSource interface {
	LatestN(userID, memberID uint, n int) ([]domain.HeartRateRecord, error)
	Count(userID, memberID uint) (int64, error)
}

// StressSource is the slice of the stress store the engine consumes.
type StressSource interface {
	Latest(userID, memberID uint) (*domain.StressAssessment, error)
}

// Engine evaluates donation eligibility against the injected stores.
type Engine struct {
	members MemberSource
	records RecordSource
	stress  StressSource
}

// NewEngine builds an engine over the given stores.
func NewEngine(members MemberSource, records RecordSource, stress StressSource) *Engine {
	return &Engine{members: members, records: records, stress: stress}
}

// Evaluate runs the sequential gate chain for one member. A failed gate is a
// declined Result, not an error; errors are reserved for store failures.
// The gate order is significant: each gate is a precondition on the next, so
// the BMI arithmetic can never see a missing or zero height.
func (e *Engine) Evaluate(userID, memberID uint) (Result, error) {
	// Gate 1: member exists and belongs to the requesting user
	member, err := e.members.Find(userID, memberID)
	if errors.Is(err, store.ErrNotFound) {
		return declined(reasonMemberNotFound), nil
	}
	if err != nil {
		return Result{}, err
	}

	// Gate 2: age present and within donor range
	if !member.HasAge() || *member.Age < minDonorAge || *member.Age > maxDonorAge {
		return declined(reasonAgeOutOfRange), nil
	}

	// Gate 3: height and weight both present
	if !member.HasHeight() || !member.HasWeight() {
		return declined(reasonVitalsMissing), nil
	}

	// Gate 4: BMI within the safe band
	bmi := health.BMI(*member.Weight, *member.Height)
	if bmi < minDonorBMI || bmi > maxDonorBMI {
		return declined(fmt.Sprintf("BMI unsafe (%.1f)", round1(bmi))), nil
	}

	// Gate 5: enough heart-rate history to average over
	records, err := e.records.LatestN(userID, memberID, domain.MaxRecordsPerMember)
	if err != nil {
		return Result{}, err
	}
	if len(records) < minRecords {
		return declined(reasonNotEnoughData), nil
	}

	// Gate 6: average BPM within the stable band
	sum := 0
	for _, r := range records {
		sum += r.BPM
	}
	avg := float64(sum) / float64(len(records))
	if avg < minAvgBPM || avg > maxAvgBPM {
		return declined(fmt.Sprintf("Unstable heart rate (%d BPM)", int(avg))), nil
	}

	// Gate 7: latest stress assessment, when present, below the threshold.
	// A missing assessment does not fail here; it is surfaced by FindMissing.
	assessment, err := e.stress.Latest(userID, memberID)
	if err != nil {
		return Result{}, err
	}
	if assessment != nil && assessment.TotalScore > maxStressScore {
		return declined(reasonHighStress), nil
	}

	var stressScore any = "NA"
	if assessment != nil {
		stressScore = assessment.TotalScore
	}
	return Result{
		Eligible:    true,
		BMI:         round1(bmi),
		AvgHR:       int(avg),
		StressScore: stressScore,
		Note:        eligibleNote,
	}, nil
}

// FindMissing reports every prerequisite still missing for the member in one
// pass: profile fields, heart-rate history depth and the stress assessment.
// Unlike Evaluate it never short-circuits; it drives the data-completion
// prompt shown before an eligibility check is attempted.
func (e *Engine) FindMissing(userID, memberID uint) ([]string, error) {
	member, err := e.members.Find(userID, memberID)
	if err != nil {
		return nil, err // store.ErrNotFound surfaces to the handler as 404
	}

	missing := []string{}
	if !member.HasAge() {
		missing = append(missing, "age")
	}
	if !member.HasHeight() {
		missing = append(missing, "height")
	}
	if !member.HasWeight() {
		missing = append(missing, "weight")
	}

	count, err := e.records.Count(userID, memberID)
	if err != nil {
		return nil, err
	}
	if count < minRecords {
		missing = append(missing, "heart_rate")
	}

	assessment, err := e.stress.Latest(userID, memberID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		missing = append(missing, "stress")
	}

	return missing, nil
}

// SaveMissing patches only the supplied profile fields; absent or zero fields
// stay untouched.
func (e *Engine) SaveMissing(userID, memberID uint, patch store.VitalsPatch) error {
	return e.members.UpdateVitals(userID, memberID, patch)
}

func declined(reason string) Result {
	return Result{Eligible: false, Reason: reason}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
